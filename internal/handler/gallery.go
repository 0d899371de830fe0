package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/middleware"
	"github.com/iliyamo/photo-gallery/internal/service"
)

// GalleryHandler serves the per-user favorites and collections. The owner
// is always the authenticated principal; no client-supplied user id is read.
type GalleryHandler struct {
	Gallery *service.GalleryService
}

func NewGalleryHandler(g *service.GalleryService) *GalleryHandler {
	return &GalleryHandler{Gallery: g}
}

// Photo ids are stored in VARCHAR(191) columns on MySQL.
type photoRefReq struct {
	PhotoID string `json:"photoId" validate:"notblank,max=191"`
}

type createCollectionReq struct {
	Name string `json:"name" validate:"notblank"`
}

func currentUser(c echo.Context) (int64, error) {
	uid, ok := middleware.UserIDFrom(c)
	if !ok {
		return 0, apperr.Unauthorized("Invalid token")
	}
	return uid, nil
}

// ----- favorites -----

func (h *GalleryHandler) ListFavorites(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.Gallery.ListFavorites(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *GalleryHandler) AddFavorite(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req photoRefReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	list, err := h.Gallery.AddFavorite(c.Request().Context(), uid, req.PhotoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *GalleryHandler) RemoveFavorite(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.Gallery.RemoveFavorite(c.Request().Context(), uid, c.Param("photoId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ----- collections -----

func (h *GalleryHandler) ListCollections(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	list, err := h.Gallery.ListCollections(c.Request().Context(), uid)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *GalleryHandler) CreateCollection(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createCollectionReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	col, err := h.Gallery.CreateCollection(c.Request().Context(), uid, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, col)
}

func (h *GalleryHandler) AddPhotoToCollection(c echo.Context) error {
	uid, err := currentUser(c)
	if err != nil {
		return err
	}
	var req photoRefReq
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	col, err := h.Gallery.AddPhotoToCollection(c.Request().Context(), uid, c.Param("id"), req.PhotoID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, col)
}
