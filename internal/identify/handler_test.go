package identify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/metalid/internal/identify"
	"github.com/JaimeStill/metalid/pkg/handlers"
	"github.com/JaimeStill/metalid/pkg/routes"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMux(maxUpload int64) *http.ServeMux {
	sys := identify.New(discard())
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler(maxUpload).Routes())
	return mux
}

type part struct {
	field    string
	value    string
	filename string
	data     []byte
}

func multipartBody(t *testing.T, parts ...part) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := mw.CreateFormFile(p.field, p.filename)
			if err != nil {
				t.Fatalf("create form file: %v", err)
			}
			fw.Write(p.data)
			continue
		}
		mw.WriteField(p.field, p.value)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestHandlerIdentify(t *testing.T) {
	mux := setupMux(1 << 20)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMetal  identify.Metal
	}{
		{"empty body uses defaults", "", http.StatusOK, identify.Uncertain},
		{"aluminum", `{"weight": 20, "volume": 10, "color": "silver"}`, http.StatusOK, identify.Aluminum},
		{"magnetic steel", `{"weight": 79, "volume": 10, "magnetic": true}`, http.StatusOK, identify.IronOrSteel},
		{"spark key accepted", `{"spark": "none", "color": "copper"}`, http.StatusOK, identify.Copper},
		{"malformed json", `{"weight":`, http.StatusBadRequest, ""},
		{"trailing data", `{"color":"red"} garbage`, http.StatusBadRequest, ""},
		{"second object", `{"color":"red"}{"color":"gold"}`, http.StatusBadRequest, ""},
		{"trailing whitespace", "{\"color\":\"red\"}\n", http.StatusOK, identify.Copper},
		{"out of range", `{"volume": 0}`, http.StatusUnprocessableEntity, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/identify", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status: got %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var id identify.Identification
			if err := json.NewDecoder(rec.Body).Decode(&id); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if id.Metal != tt.wantMetal {
				t.Errorf("metal: got %q, want %q", id.Metal, tt.wantMetal)
			}
			if id.ID.String() == "00000000-0000-0000-0000-000000000000" {
				t.Error("identification id not assigned")
			}
		})
	}
}

func TestHandlerIdentifyValidationFields(t *testing.T) {
	mux := setupMux(1 << 20)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/identify", strings.NewReader(`{"scratch": 0, "weight": -2}`))
	mux.ServeHTTP(rec, req)

	var body handlers.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := body.Fields["scratch"]; !ok {
		t.Errorf("fields missing scratch: %v", body.Fields)
	}
	if _, ok := body.Fields["weight"]; !ok {
		t.Errorf("fields missing weight: %v", body.Fields)
	}
}

func TestHandlerUpload(t *testing.T) {
	mux := setupMux(1 << 20)

	t.Run("fields with image", func(t *testing.T) {
		body, contentType := multipartBody(t,
			part{field: "weight", value: "20"},
			part{field: "volume", value: "10"},
			part{field: "color", value: "Golden"},
			part{field: "image", filename: "sample.png", data: pngBytes(t, 8, 8)},
		)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/identify/upload", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200: %s", rec.Code, rec.Body.String())
		}

		var resp identify.UploadResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Identification.Metal != identify.BrassOrBronze {
			t.Errorf("metal: got %q, want %q", resp.Identification.Metal, identify.BrassOrBronze)
		}
		if resp.Preview == nil || resp.Preview.Width != 8 {
			t.Errorf("preview: got %+v", resp.Preview)
		}
	})

	t.Run("no image", func(t *testing.T) {
		body, contentType := multipartBody(t, part{field: "magnetic", value: "on"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/identify/upload", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status: got %d, want 200", rec.Code)
		}

		var resp identify.UploadResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Identification.Metal != identify.IronOrSteel {
			t.Errorf("metal: got %q, want %q", resp.Identification.Metal, identify.IronOrSteel)
		}
		if resp.Preview != nil {
			t.Error("preview should be omitted without an image")
		}
	})

	errorTests := []struct {
		name       string
		parts      []part
		maxUpload  int64
		wantStatus int
	}{
		{
			name:       "corrupt image",
			parts:      []part{{field: "image", filename: "bad.png", data: []byte("garbage")}},
			maxUpload:  1 << 20,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported image",
			parts:      []part{{field: "image", filename: "anim.gif", data: []byte("GIF89a")}},
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:       "image over limit",
			parts:      []part{{field: "image", filename: "big.png", data: bytes.Repeat([]byte{0}, 2048)}},
			maxUpload:  1024,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "invalid field",
			parts:      []part{{field: "scratch", value: "12"}},
			maxUpload:  1 << 20,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			body, contentType := multipartBody(t, tt.parts...)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/identify/upload", body)
			req.Header.Set("Content-Type", contentType)
			setupMux(tt.maxUpload).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	t.Run("not multipart", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/identify/upload", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestHandlerOptions(t *testing.T) {
	mux := setupMux(1 << 20)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/identify/options", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}

	var opts identify.Options
	if err := json.NewDecoder(rec.Body).Decode(&opts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if opts.Defaults != identify.Defaults() {
		t.Errorf("defaults: got %+v", opts.Defaults)
	}
	if len(opts.SparkResults) != 3 || opts.ScratchMin != 1 || opts.ScratchMax != 10 || opts.VolumeMin != 0.1 {
		t.Errorf("options: got %+v", opts)
	}
}

func TestIdentifyCancelledContext(t *testing.T) {
	sys := identify.New(discard())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sys.Identify(ctx, identify.Defaults()); err == nil {
		t.Error("expected error for cancelled context")
	}
}
