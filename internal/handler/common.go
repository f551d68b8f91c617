package handler // handler defines the HTTP handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxHallImages bounds how many files one hall-creation request may carry.
const maxHallImages = 10

// errBadImageExt rejects files outside the allowed image extensions.
var errBadImageExt = errors.New("only jpg, jpeg, png and webp images are allowed")

// errTooManyImages rejects uploads above maxHallImages.
var errTooManyImages = errors.New("too many images")

// getUserID extracts the user_id stored by the JWT middleware and converts it
// to uint64. Numeric JWT claims arrive as float64 from encoding/json.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

func parseUint(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}

// isAllowedImageExt mirrors the upload filter: jpg/jpeg/png/webp only,
// matched on the lower-cased file extension.
func isAllowedImageExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	}
	return false
}

// saveHallImages stores the multipart "images" files under dir with
// collision-free names and returns the stored paths in upload order (the
// first path becomes the hall's main image). The whole request is rejected
// before anything is written when a file has a disallowed extension or the
// count exceeds maxHallImages.
func saveHallImages(c echo.Context, dir string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["images"]
	if len(files) > maxHallImages {
		return nil, errTooManyImages
	}
	for _, fh := range files {
		if !isAllowedImageExt(fh.Filename) {
			return nil, errBadImageExt
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := saveOne(fh, dir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func saveOne(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}
