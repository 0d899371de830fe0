package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/id"
	"github.com/iliyamo/photo-gallery/internal/model"
	"github.com/iliyamo/photo-gallery/internal/repository"
)

// GalleryService manages a user's favorites and collections. Every method
// takes the user id of the verified principal; nothing here accepts an
// owner id from the client.
type GalleryService struct {
	favorites   repository.FavoriteStore
	collections repository.CollectionStore
	newID       id.Generator
	now         func() time.Time
}

func NewGalleryService(favorites repository.FavoriteStore, collections repository.CollectionStore) *GalleryService {
	return &GalleryService{
		favorites:   favorites,
		collections: collections,
		newID:       id.Generate,
		now:         time.Now,
	}
}

func (s *GalleryService) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	list, err := s.favorites.ListFavorites(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to load favorites", err)
	}
	return list, nil
}

// AddFavorite is an idempotent append; the full list is returned.
// photoID is stored exactly as given so a later remove with the same id matches.
func (s *GalleryService) AddFavorite(ctx context.Context, userID int64, photoID string) ([]model.Favorite, error) {
	if blank(photoID) {
		return nil, apperr.Validation("photoId required")
	}
	list, err := s.favorites.AddFavorite(ctx, userID, photoID, s.now().UTC())
	if err != nil {
		return nil, apperr.Internal("Failed to add favorite", err)
	}
	return list, nil
}

// RemoveFavorite succeeds whether or not photoID was a favorite.
func (s *GalleryService) RemoveFavorite(ctx context.Context, userID int64, photoID string) ([]model.Favorite, error) {
	list, err := s.favorites.RemoveFavorite(ctx, userID, photoID)
	if err != nil {
		return nil, apperr.Internal("Failed to remove favorite", err)
	}
	return list, nil
}

func (s *GalleryService) ListCollections(ctx context.Context, userID int64) ([]model.Collection, error) {
	list, err := s.collections.ListCollections(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("Failed to load collections", err)
	}
	return list, nil
}

// CreateCollection mints a collision-resistant id for the new collection.
func (s *GalleryService) CreateCollection(ctx context.Context, userID int64, name string) (model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Collection{}, apperr.Validation("name required")
	}
	cid, err := s.newID("col")
	if err != nil {
		return model.Collection{}, apperr.Internal("Failed to create collection", err)
	}
	c, err := s.collections.CreateCollection(ctx, model.Collection{
		ID:        cid,
		OwnerID:   userID,
		Name:      name,
		Photos:    []string{},
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return model.Collection{}, apperr.Internal("Failed to create collection", err)
	}
	return c, nil
}

// AddPhotoToCollection appends photoID unless already present. A collection
// owned by someone else is reported exactly like a missing one.
func (s *GalleryService) AddPhotoToCollection(ctx context.Context, userID int64, collectionID, photoID string) (model.Collection, error) {
	if blank(photoID) {
		return model.Collection{}, apperr.Validation("photoId required")
	}
	c, err := s.collections.AddPhotoToCollection(ctx, userID, collectionID, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Collection{}, apperr.NotFound("Collection not found")
		}
		return model.Collection{}, apperr.Internal("Failed to update collection", err)
	}
	return c, nil
}
