package identify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/metalid/pkg/handlers"
	"github.com/JaimeStill/metalid/pkg/routes"
)

// FormOverhead is the body allowance for non-file multipart fields on top
// of the image limit.
const FormOverhead = 1 << 20

// Handler provides HTTP endpoints for identify operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
}

// UploadResponse is returned by the multipart endpoint.
type UploadResponse struct {
	Identification *Identification `json:"identification"`
	Preview        *Preview        `json:"preview,omitempty"`
}

// NewHandler creates a Handler. maxUploadSize bounds multipart request bodies.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "identify"),
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for identify endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/identify",
		Tags:   []string{"Identify"},
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Identify, OpenAPI: identifyOp},
			{Method: "POST", Pattern: "/upload", Handler: h.Upload, OpenAPI: uploadOp},
			{Method: "GET", Pattern: "/options", Handler: h.Options, OpenAPI: optionsOp},
		},
	}
}

// Identify decodes a JSON Request, applies defaults and bounds, and returns
// the Identification. An empty body identifies the default sample.
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, errors.New("decode request: unexpected data after JSON body"))
		return
	}

	in, err := req.Input()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	id, err := h.sys.Identify(r.Context(), in)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, id)
}

// Upload accepts the multipart form the HTML page submits, including the
// optional image, and returns the Identification with the image Preview.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+FormOverhead)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		status := http.StatusBadRequest
		if mapped := MapHTTPStatus(err); mapped == http.StatusRequestEntityTooLarge {
			status = mapped
		}
		handlers.RespondError(w, h.logger, status, fmt.Errorf("parse form: %w", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	in, err := FromForm(r.PostForm)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	preview, err := PreviewFromRequest(r, h.maxUploadSize)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	id, err := h.sys.Identify(r.Context(), in)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UploadResponse{
		Identification: id,
		Preview:        preview,
	})
}

// Options returns the collector defaults, choices and bounds.
func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Options())
}
