package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/photo-gallery/internal/model"
)

const photoColumns = "id, title, description, category, url, storage_key, content_type, width, height, blur_hash, size_bytes, created_at"

func (s *SQLStore) InsertPhoto(ctx context.Context, p model.Photo) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO photos ("+photoColumns+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.Title, p.Description, p.Category, p.URL, p.StorageKey, p.ContentType,
		p.Width, p.Height, p.BlurHash, p.SizeBytes, toMillis(p.DateCreated))
	return err
}

func (s *SQLStore) GetPhoto(ctx context.Context, id string) (model.Photo, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+photoColumns+" FROM photos WHERE id=? LIMIT 1", id)
	p, err := scanPhoto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Photo{}, ErrNotFound
	}
	return p, err
}

func (s *SQLStore) ListPhotos(ctx context.Context, category string) ([]model.Photo, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" {
		rows, err = s.DB.QueryContext(ctx, "SELECT "+photoColumns+" FROM photos ORDER BY seq DESC")
	} else {
		rows, err = s.DB.QueryContext(ctx,
			"SELECT "+photoColumns+" FROM photos WHERE category=? ORDER BY seq DESC", category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhoto(r rowScanner) (model.Photo, error) {
	var (
		p  model.Photo
		ms int64
	)
	err := r.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.URL, &p.StorageKey,
		&p.ContentType, &p.Width, &p.Height, &p.BlurHash, &p.SizeBytes, &ms)
	if err != nil {
		return model.Photo{}, err
	}
	p.DateCreated = fromMillis(ms)
	return p, nil
}
