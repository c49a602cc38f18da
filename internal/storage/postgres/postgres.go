// Package postgres implements storage.Store on pgx. Partial updates are a
// merge by id: only non-nil fields reach the SET clause.
package postgres

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dulpton/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// mapErr translates pgx sentinel errors to storage errors.
func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}

// setClause accumulates columns for a dynamic partial UPDATE.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.args = append(s.args, v)
	s.cols = append(s.cols, fmt.Sprintf("%s = $%d", col, len(s.args)))
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

// where appends the id argument and renders "SET ... WHERE id = $n".
func (s *setClause) where(id int64) (string, []any) {
	s.args = append(s.args, id)
	return fmt.Sprintf("SET %s WHERE id = $%d", strings.Join(s.cols, ", "), len(s.args)), s.args
}

// tsOrNil lets inserts pair a caller timestamp with a COALESCE(.., NOW())
// column default: a zero time falls through to the database clock.
func tsOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
