package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/photo-gallery/internal/model"
)

// InsertUser inserts u and returns it with its new ID. The unique index on
// users.email makes the duplicate check atomic with the write.
func (s *SQLStore) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, created_at) VALUES (?,?,?,?)",
		u.Name, u.Email, u.PasswordHash, toMillis(u.CreatedAt))
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	u.ID = id
	return u, nil
}

// FindUserByEmail matches the email exactly as stored.
func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.scanUser(s.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email=? LIMIT 1",
		email))
}

func (s *SQLStore) FindUserByID(ctx context.Context, id int64) (model.User, error) {
	return s.scanUser(s.DB.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id=? LIMIT 1",
		id))
}

func (s *SQLStore) scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		created int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	u.CreatedAt = fromMillis(created)
	return u, nil
}
