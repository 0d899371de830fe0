package repository

import (
	"context"
	"time"

	"github.com/iliyamo/photo-gallery/internal/model"
)

// AddFavorite relies on the (user_id, photo_id) unique key: a repeated add
// is ignored by the database, so concurrent requests cannot duplicate it.
func (s *SQLStore) AddFavorite(ctx context.Context, userID int64, photoID string, at time.Time) ([]model.Favorite, error) {
	_, err := s.DB.ExecContext(ctx,
		s.Dialect.insertIgnore()+" INTO favorites (user_id, photo_id, added_at) VALUES (?,?,?)",
		userID, photoID, toMillis(at))
	if err != nil {
		return nil, err
	}
	return s.ListFavorites(ctx, userID)
}

func (s *SQLStore) RemoveFavorite(ctx context.Context, userID int64, photoID string) ([]model.Favorite, error) {
	if _, err := s.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id=? AND photo_id=?", userID, photoID); err != nil {
		return nil, err
	}
	return s.ListFavorites(ctx, userID)
}

// ListFavorites returns favorites in the order they were added.
func (s *SQLStore) ListFavorites(ctx context.Context, userID int64) ([]model.Favorite, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT photo_id, added_at FROM favorites WHERE user_id=? ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Favorite{}
	for rows.Next() {
		var (
			f  model.Favorite
			ms int64
		)
		if err := rows.Scan(&f.PhotoID, &ms); err != nil {
			return nil, err
		}
		f.AddedAt = fromMillis(ms)
		out = append(out, f)
	}
	return out, rows.Err()
}
