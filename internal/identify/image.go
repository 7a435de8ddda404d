package identify

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// ImageFormats lists the accepted upload extensions.
var ImageFormats = []string{"jpg", "png", "jpeg"}

// Preview describes an uploaded image prepared for redisplay.
// The bytes behind DataURL are the original upload, unmodified.
type Preview struct {
	Filename    string `json:"filename"`
	Format      string `json:"format"`
	ContentType string `json:"content_type"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Size        int64  `json:"size"`
	DataURL     string `json:"data_url"`
}

// DecodePreview validates data as a jpeg or png image and builds its Preview.
// Files with a recognized extension must also decode; files without one are
// sniffed.
func DecodePreview(filename string, data []byte) (*Preview, error) {
	if err := checkFormat(filename, data); err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, filename, err)
	}

	bounds := img.Bounds()
	contentType := "image/" + format

	return &Preview{
		Filename:    filepath.Base(filename),
		Format:      format,
		ContentType: contentType,
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Size:        int64(len(data)),
		DataURL:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// PreviewFromRequest reads the optional image field from a parsed multipart
// request. It returns nil without error when no file was uploaded.
func PreviewFromRequest(r *http.Request, limit int64) (*Preview, error) {
	file, header, err := r.FormFile(FieldImage)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, fmt.Errorf("read image: %w", err)
	}
	defer file.Close()

	return readPreview(file, header, limit)
}

func readPreview(file multipart.File, header *multipart.FileHeader, limit int64) (*Preview, error) {
	if limit > 0 && header.Size > limit {
		return nil, ErrImageTooLarge
	}

	var reader io.Reader = file
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, ErrImageTooLarge
	}

	return DecodePreview(header.Filename, data)
}

func checkFormat(filename string, data []byte) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext != "" {
		if !slices.Contains(ImageFormats, ext) {
			return ErrUnsupportedImage
		}
		return nil
	}

	switch http.DetectContentType(data) {
	case "image/jpeg", "image/png":
		return nil
	}
	return ErrUnsupportedImage
}
