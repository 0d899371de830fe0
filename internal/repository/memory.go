package repository

import (
	"context"
	"sync"
	"time"

	"github.com/iliyamo/photo-gallery/internal/model"
)

// MemoryStore keeps everything in process memory. Data is lost on restart.
//
// Users and photos sit behind store-wide locks. Favorites and collections
// live in per-user buckets with their own mutex, so writes for one user
// never wait on another and concurrent appends for the same user cannot
// lose updates.
type MemoryStore struct {
	usersMu sync.RWMutex
	users   []model.User
	byEmail map[string]int // email -> index into users

	bucketsMu sync.Mutex
	buckets   map[int64]*userBucket

	photosMu sync.RWMutex
	photos   []model.Photo
}

type userBucket struct {
	mu          sync.Mutex
	favorites   []model.Favorite
	collections []*model.Collection
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byEmail: make(map[string]int),
		buckets: make(map[int64]*userBucket),
	}
}

func (s *MemoryStore) Close() error { return nil }

// ----- users -----

func (s *MemoryStore) InsertUser(_ context.Context, u model.User) (model.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return model.User{}, ErrEmailExists
	}
	u.ID = int64(len(s.users) + 1)
	s.users = append(s.users, u)
	s.byEmail[u.Email] = len(s.users) - 1
	return u, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (model.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	i, ok := s.byEmail[email]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return s.users[i], nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id int64) (model.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	if id < 1 || id > int64(len(s.users)) {
		return model.User{}, ErrNotFound
	}
	return s.users[id-1], nil
}

// ----- per-user buckets -----

func (s *MemoryStore) bucket(userID int64) *userBucket {
	s.bucketsMu.Lock()
	defer s.bucketsMu.Unlock()
	b, ok := s.buckets[userID]
	if !ok {
		b = &userBucket{}
		s.buckets[userID] = b
	}
	return b
}

func (b *userBucket) favoritesCopy() []model.Favorite {
	return append(make([]model.Favorite, 0, len(b.favorites)), b.favorites...)
}

func (s *MemoryStore) AddFavorite(_ context.Context, userID int64, photoID string, at time.Time) ([]model.Favorite, error) {
	b := s.bucket(userID)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, f := range b.favorites {
		if f.PhotoID == photoID {
			return b.favoritesCopy(), nil
		}
	}
	b.favorites = append(b.favorites, model.Favorite{PhotoID: photoID, AddedAt: at})
	return b.favoritesCopy(), nil
}

func (s *MemoryStore) RemoveFavorite(_ context.Context, userID int64, photoID string) ([]model.Favorite, error) {
	b := s.bucket(userID)
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.favorites[:0]
	for _, f := range b.favorites {
		if f.PhotoID != photoID {
			kept = append(kept, f)
		}
	}
	b.favorites = kept
	return b.favoritesCopy(), nil
}

func (s *MemoryStore) ListFavorites(_ context.Context, userID int64) ([]model.Favorite, error) {
	b := s.bucket(userID)
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.favoritesCopy(), nil
}

func (s *MemoryStore) CreateCollection(_ context.Context, c model.Collection) (model.Collection, error) {
	b := s.bucket(c.OwnerID)
	b.mu.Lock()
	defer b.mu.Unlock()
	stored := c.Clone()
	if stored.Photos == nil {
		stored.Photos = []string{}
	}
	b.collections = append(b.collections, &stored)
	return stored.Clone(), nil
}

func (s *MemoryStore) AddPhotoToCollection(_ context.Context, userID int64, collectionID, photoID string) (model.Collection, error) {
	b := s.bucket(userID)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.collections {
		if c.ID != collectionID {
			continue
		}
		if !c.HasPhoto(photoID) {
			c.Photos = append(c.Photos, photoID)
		}
		return c.Clone(), nil
	}
	return model.Collection{}, ErrNotFound
}

func (s *MemoryStore) ListCollections(_ context.Context, userID int64) ([]model.Collection, error) {
	b := s.bucket(userID)
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Collection, 0, len(b.collections))
	for _, c := range b.collections {
		out = append(out, c.Clone())
	}
	return out, nil
}

// ----- photos -----

func (s *MemoryStore) InsertPhoto(_ context.Context, p model.Photo) error {
	s.photosMu.Lock()
	defer s.photosMu.Unlock()
	s.photos = append(s.photos, p)
	return nil
}

func (s *MemoryStore) GetPhoto(_ context.Context, id string) (model.Photo, error) {
	s.photosMu.RLock()
	defer s.photosMu.RUnlock()
	for _, p := range s.photos {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Photo{}, ErrNotFound
}

func (s *MemoryStore) ListPhotos(_ context.Context, category string) ([]model.Photo, error) {
	s.photosMu.RLock()
	defer s.photosMu.RUnlock()
	out := make([]model.Photo, 0, len(s.photos))
	for i := len(s.photos) - 1; i >= 0; i-- {
		if category == "" || s.photos[i].Category == category {
			out = append(out, s.photos[i])
		}
	}
	return out, nil
}

// ----- stats -----

func (s *MemoryStore) Stats(_ context.Context) (model.Stats, error) {
	var st model.Stats

	s.usersMu.RLock()
	st.Users = int64(len(s.users))
	s.usersMu.RUnlock()

	s.photosMu.RLock()
	st.Photos = int64(len(s.photos))
	s.photosMu.RUnlock()

	s.bucketsMu.Lock()
	buckets := make([]*userBucket, 0, len(s.buckets))
	for _, b := range s.buckets {
		buckets = append(buckets, b)
	}
	s.bucketsMu.Unlock()

	for _, b := range buckets {
		b.mu.Lock()
		st.Favorites += int64(len(b.favorites))
		st.Collections += int64(len(b.collections))
		b.mu.Unlock()
	}
	return st, nil
}
