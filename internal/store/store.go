// Package store is the persistence layer. Every function resolves referenced
// parents before any conflict or write check, and returns apperr kinds so the
// HTTP boundary can map them without inspecting storage errors. Uniqueness is
// ultimately enforced by the schema's unique indexes; the application-level
// existence checks only exist to produce friendly conflict messages.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/example/kerapido/internal/apperr"
)

// Store wraps the database handle with domain operations.
type Store struct {
	db *gorm.DB
}

// New constructs a Store.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that compose queries.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// first loads a single record into dest, mapping a missing row to NotFound.
func (s *Store) first(dest interface{}, notFound *apperr.Error, query string, args ...interface{}) error {
	if err := s.db.First(dest, append([]interface{}{query}, args...)...).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}
		return err
	}
	return nil
}

// conflictOn maps a duplicate-key error to the given Conflict, leaving other
// errors untouched. Used where the unique constraint is the enforcement.
func conflictOn(err error, conflict *apperr.Error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return conflict
	}
	return err
}
