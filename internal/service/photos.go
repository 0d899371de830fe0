package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/photo-gallery/internal/apperr"
	"github.com/iliyamo/photo-gallery/internal/id"
	"github.com/iliyamo/photo-gallery/internal/logging"
	"github.com/iliyamo/photo-gallery/internal/media"
	"github.com/iliyamo/photo-gallery/internal/model"
	q "github.com/iliyamo/photo-gallery/internal/queue"
	"github.com/iliyamo/photo-gallery/internal/repository"
)

// UploadInput is one admin upload. Data holds the whole file; the HTTP
// layer caps its size before it gets here.
type UploadInput struct {
	Filename    string
	Title       string
	Description string
	Category    string
	Data        []byte
	UploadedBy  string
}

// PhotoService serves the catalog and ingests admin uploads.
type PhotoService struct {
	store   repository.Store
	storage media.Storage
	events  Publisher
	log     logging.Logger
	newID   id.Generator
	now     func() time.Time
}

func NewPhotoService(store repository.Store, storage media.Storage, events Publisher, log logging.Logger) *PhotoService {
	if events == nil {
		events = NopPublisher{}
	}
	return &PhotoService{
		store:   store,
		storage: storage,
		events:  events,
		log:     log,
		newID:   id.Generate,
		now:     time.Now,
	}
}

// List returns the catalog newest first. "" and "all" mean every category.
func (s *PhotoService) List(ctx context.Context, category string) ([]model.Photo, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	list, err := s.store.ListPhotos(ctx, category)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch photos", err)
	}
	return list, nil
}

func (s *PhotoService) Get(ctx context.Context, photoID string) (model.Photo, error) {
	p, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Photo{}, apperr.NotFound("Photo not found")
		}
		return model.Photo{}, apperr.Internal("Failed to fetch photo details", err)
	}
	return p, nil
}

// Upload validates the bytes as an image, stores them under a fresh key and
// records the catalog entry.
func (s *PhotoService) Upload(ctx context.Context, in UploadInput) (model.Photo, error) {
	if len(in.Data) == 0 {
		return model.Photo{}, apperr.Validation("photo required")
	}
	info, err := media.Probe(in.Data)
	if err != nil {
		if errors.Is(err, media.ErrNotImage) {
			return model.Photo{}, apperr.Validation("Only image uploads are allowed")
		}
		if errors.Is(err, media.ErrTooManyPixels) {
			return model.Photo{}, apperr.Validation("Image dimensions are too large")
		}
		return model.Photo{}, apperr.Internal("Upload failed", err)
	}

	pid, err := s.newID("ph")
	if err != nil {
		return model.Photo{}, apperr.Internal("Upload failed", err)
	}
	key := pid + info.Ext
	url, err := s.storage.Put(ctx, key, info.ContentType, in.Data)
	if err != nil {
		return model.Photo{}, apperr.Internal("Upload failed", err)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSuffix(in.Filename, extOf(in.Filename))
	}
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "" {
		category = "uncategorized"
	}

	p := model.Photo{
		ID:          pid,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		URL:         url,
		StorageKey:  key,
		ContentType: info.ContentType,
		Width:       info.Width,
		Height:      info.Height,
		BlurHash:    info.BlurHash,
		SizeBytes:   int64(len(in.Data)),
		DateCreated: s.now().UTC(),
	}
	if err := s.store.InsertPhoto(ctx, p); err != nil {
		return model.Photo{}, apperr.Internal("Upload failed", err)
	}

	ev := q.Event{
		Type:       q.EventPhotoUploaded,
		PhotoID:    p.ID,
		Category:   p.Category,
		Actor:      in.UploadedBy,
		OccurredAt: p.DateCreated.Format(time.RFC3339),
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.log.Warn(ctx, "event publish failed", "type", ev.Type, "error", err)
	}
	s.log.Info(ctx, "photo uploaded", "photo_id", p.ID, "bytes", p.SizeBytes)
	return p, nil
}

// Stats feeds the admin dashboard.
func (s *PhotoService) Stats(ctx context.Context) (model.Stats, error) {
	st, err := s.store.Stats(ctx)
	if err != nil {
		return model.Stats{}, apperr.Internal("Error loading dashboard data", err)
	}
	return st, nil
}

func extOf(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[i:]
	}
	return ""
}
