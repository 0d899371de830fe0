package repository

import (
	"context"
	"time"

	"github.com/iliyamo/photo-gallery/internal/model"
)

// UserStore holds registered accounts.
type UserStore interface {
	// InsertUser assigns the next id and stores u, or fails with
	// ErrEmailExists. The uniqueness check and the write are atomic.
	InsertUser(ctx context.Context, u model.User) (model.User, error)
	FindUserByEmail(ctx context.Context, email string) (model.User, error)
	FindUserByID(ctx context.Context, id int64) (model.User, error)
}

// FavoriteStore is the per-user favorites ledger. Every mutation returns the
// full list as it stands after the change.
type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID int64, photoID string, at time.Time) ([]model.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int64, photoID string) ([]model.Favorite, error)
	ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error)
}

// CollectionStore keeps named photo groupings. Lookups are always scoped by
// owner; a collection id that exists under another user is ErrNotFound.
type CollectionStore interface {
	CreateCollection(ctx context.Context, c model.Collection) (model.Collection, error)
	AddPhotoToCollection(ctx context.Context, userID int64, collectionID, photoID string) (model.Collection, error)
	ListCollections(ctx context.Context, userID int64) ([]model.Collection, error)
}

// PhotoStore is the catalog filled by admin uploads.
type PhotoStore interface {
	InsertPhoto(ctx context.Context, p model.Photo) error
	GetPhoto(ctx context.Context, id string) (model.Photo, error)
	// ListPhotos returns newest first. An empty category matches all.
	ListPhotos(ctx context.Context, category string) ([]model.Photo, error)
}

// Store bundles everything the application needs from storage.
type Store interface {
	UserStore
	FavoriteStore
	CollectionStore
	PhotoStore
	Stats(ctx context.Context) (model.Stats, error)
	Close() error
}
