package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/photo-gallery/internal/model"
)

// Dialect selects the few statements that differ between MySQL and SQLite.
// Everything else is written with "?" placeholders that both accept.
type Dialect string

const (
	DialectMySQL  Dialect = "mysql"
	DialectSQLite Dialect = "sqlite"
)

// insertIgnore returns the INSERT prefix that silently skips rows violating
// a unique key.
func (d Dialect) insertIgnore() string {
	if d == DialectSQLite {
		return "INSERT OR IGNORE"
	}
	return "INSERT IGNORE"
}

// SQLStore implements Store on database/sql. The schema comes from the goose
// migrations in internal/database/migrations.
type SQLStore struct {
	DB      *sql.DB
	Dialect Dialect
}

var _ Store = (*SQLStore)(nil)

func NewSQLStore(db *sql.DB, d Dialect) *SQLStore { return &SQLStore{DB: db, Dialect: d} }

func (s *SQLStore) Close() error { return s.DB.Close() }

// isDuplicate reports a unique-key violation from either driver.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Times are stored as unix milliseconds so both dialects scan them the same way.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func (s *SQLStore) Stats(ctx context.Context) (model.Stats, error) {
	var st model.Stats
	counts := []struct {
		table string
		dst   *int64
	}{
		{"users", &st.Users},
		{"photos", &st.Photos},
		{"favorites", &st.Favorites},
		{"collections", &st.Collections},
	}
	for _, c := range counts {
		if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+c.table).Scan(c.dst); err != nil {
			return model.Stats{}, fmt.Errorf("count %s: %w", c.table, err)
		}
	}
	return st, nil
}
