package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/middleware"
	"github.com/iliyamo/photo-gallery/internal/service"
)

// PhotoHandler serves the public catalog and the admin-only upload and
// dashboard endpoints.
type PhotoHandler struct {
	Photos   *service.PhotoService
	MaxBytes int64 // per-file upload cap
}

func NewPhotoHandler(p *service.PhotoService, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{Photos: p, MaxBytes: maxBytes}
}

// List: GET /api/photos?category=
func (h *PhotoHandler) List(c echo.Context) error {
	list, err := h.Photos.List(c.Request().Context(), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get: GET /api/photos/:id
func (h *PhotoHandler) Get(c echo.Context) error {
	p, err := h.Photos.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Upload: POST /api/upload, multipart with a "photo" file part.
func (h *PhotoHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("photo")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return h.tooLarge()
		}
		return apperr.Validation("photo required")
	}
	if h.MaxBytes > 0 && fh.Size > h.MaxBytes {
		return h.tooLarge()
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Internal("Upload failed", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return apperr.Internal("Upload failed", err)
	}

	var by string
	if p, ok := middleware.PrincipalFrom(c); ok {
		by = p.Username
	}
	photo, err := h.Photos.Upload(c.Request().Context(), service.UploadInput{
		Filename:    fh.Filename,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Data:        data,
		UploadedBy:  by,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, photo)
}

// Stats: GET /api/admin/stats
func (h *PhotoHandler) Stats(c echo.Context) error {
	st, err := h.Photos.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, st)
}

func (h *PhotoHandler) tooLarge() error {
	return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("File exceeds the %d byte limit", h.MaxBytes))
}
