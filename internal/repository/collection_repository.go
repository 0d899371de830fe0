package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/photo-gallery/internal/model"
)

func (s *SQLStore) CreateCollection(ctx context.Context, c model.Collection) (model.Collection, error) {
	if _, err := s.DB.ExecContext(ctx,
		"INSERT INTO collections (id, user_id, name, created_at) VALUES (?,?,?,?)",
		c.ID, c.OwnerID, c.Name, toMillis(c.CreatedAt)); err != nil {
		return model.Collection{}, err
	}
	out := c.Clone()
	if out.Photos == nil {
		out.Photos = []string{}
	}
	return out, nil
}

// AddPhotoToCollection runs in one transaction so the ownership check and
// the append see the same state.
func (s *SQLStore) AddPhotoToCollection(ctx context.Context, userID int64, collectionID, photoID string) (model.Collection, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Collection{}, err
	}
	defer func() { _ = tx.Rollback() }()

	c := model.Collection{ID: collectionID, OwnerID: userID}
	var created int64
	err = tx.QueryRowContext(ctx,
		"SELECT name, created_at FROM collections WHERE id=? AND user_id=? LIMIT 1",
		collectionID, userID).Scan(&c.Name, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Collection{}, ErrNotFound
		}
		return model.Collection{}, err
	}
	c.CreatedAt = fromMillis(created)

	if _, err := tx.ExecContext(ctx,
		s.Dialect.insertIgnore()+" INTO collection_photos (collection_id, photo_id) VALUES (?,?)",
		collectionID, photoID); err != nil {
		return model.Collection{}, err
	}

	rows, err := tx.QueryContext(ctx,
		"SELECT photo_id FROM collection_photos WHERE collection_id=? ORDER BY id", collectionID)
	if err != nil {
		return model.Collection{}, err
	}
	c.Photos = []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			rows.Close()
			return model.Collection{}, err
		}
		c.Photos = append(c.Photos, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return model.Collection{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

// ListCollections returns the user's collections in creation order, each
// with its photos in insertion order.
func (s *SQLStore) ListCollections(ctx context.Context, userID int64) ([]model.Collection, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM collections WHERE user_id=? ORDER BY seq", userID)
	if err != nil {
		return nil, err
	}
	out := []model.Collection{}
	index := map[string]int{}
	for rows.Next() {
		var (
			c  model.Collection
			ms int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &ms); err != nil {
			rows.Close()
			return nil, err
		}
		c.OwnerID = userID
		c.CreatedAt = fromMillis(ms)
		c.Photos = []string{}
		index[c.ID] = len(out)
		out = append(out, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	prow, err := s.DB.QueryContext(ctx,
		`SELECT cp.collection_id, cp.photo_id
		   FROM collection_photos cp
		   JOIN collections c ON c.id = cp.collection_id
		  WHERE c.user_id=?
		  ORDER BY cp.id`, userID)
	if err != nil {
		return nil, err
	}
	defer prow.Close()
	for prow.Next() {
		var cid, pid string
		if err := prow.Scan(&cid, &pid); err != nil {
			return nil, err
		}
		if i, ok := index[cid]; ok {
			out[i].Photos = append(out[i].Photos, pid)
		}
	}
	return out, prow.Err()
}
