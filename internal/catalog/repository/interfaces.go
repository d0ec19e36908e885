package repository

import (
	"github.com/kinomedia/kino/internal/catalog/domain"
)

// Store is the local movie store: locally-authored records independent
// of the remote provider. All operations are synchronous; a store used
// from multiple goroutines must be safe for concurrent access.
type Store interface {
	// Create validates the draft, assigns a local id and appends the
	// record. Every violated rule is reported in one validation error.
	Create(draft domain.MovieDraft) (domain.Movie, error)

	// Update merges the draft's non-zero fields into the record with
	// draft.ID. Externally-sourced records cannot be updated.
	Update(draft domain.MovieDraft) (domain.Movie, error)

	// Delete removes the record with the given id, reporting whether
	// it existed. Externally-sourced records cannot be deleted.
	Delete(id string) (bool, error)

	// FindByID returns the record with the given id, if present.
	FindByID(id string) (domain.Movie, bool)

	// List returns all records in insertion order.
	List() []domain.Movie
}
