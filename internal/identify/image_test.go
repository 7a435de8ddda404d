package identify_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/JaimeStill/metalid/internal/identify"
)

func sampleImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: 184, G: 115, B: 51, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, sampleImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, sampleImage(w, h), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func TestDecodePreview(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		data       []byte
		wantFormat string
	}{
		{"png", "sample.png", pngBytes(t, 4, 3), "png"},
		{"jpeg extension", "sample.jpeg", jpegBytes(t, 4, 3), "jpeg"},
		{"jpg uppercase extension", "SAMPLE.JPG", jpegBytes(t, 4, 3), "jpeg"},
		{"no extension sniffed", "sample", pngBytes(t, 4, 3), "png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := identify.DecodePreview(tt.filename, tt.data)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if p.Format != tt.wantFormat {
				t.Errorf("format: got %s, want %s", p.Format, tt.wantFormat)
			}
			if p.Width != 4 || p.Height != 3 {
				t.Errorf("bounds: got %dx%d, want 4x3", p.Width, p.Height)
			}
			if p.Size != int64(len(tt.data)) {
				t.Errorf("size: got %d, want %d", p.Size, len(tt.data))
			}
			if !strings.HasPrefix(p.DataURL, "data:image/"+tt.wantFormat+";base64,") {
				t.Errorf("data url prefix: got %.40s", p.DataURL)
			}
		})
	}
}

func TestDecodePreviewErrors(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     error
	}{
		{"unsupported extension", "sample.gif", pngBytes(t, 2, 2), identify.ErrUnsupportedImage},
		{"corrupt png", "sample.png", []byte("not an image"), identify.ErrInvalidImage},
		{"unsniffable", "sample", []byte("plain text"), identify.ErrUnsupportedImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := identify.DecodePreview(tt.filename, tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("error: got %v, want %v", err, tt.want)
			}
		})
	}
}
