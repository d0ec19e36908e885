package repository

import (
	"context"
	"sync"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/pkg/errors"
	"github.com/kinomedia/kino/pkg/interfaces"
)

// MemoryStore is an in-memory movie store. Access is mutex-guarded so
// the store can be shared across goroutines.
type MemoryStore struct {
	mu     sync.RWMutex
	movies []domain.Movie
	bus    interfaces.EventBus
	logger interfaces.Logger
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(bus interfaces.EventBus, logger interfaces.Logger) *MemoryStore {
	return &MemoryStore{
		movies: []domain.Movie{},
		bus:    bus,
		logger: logger,
	}
}

// Seed inserts records directly, bypassing validation. Used for the
// bundled sample catalog and for tests.
func (s *MemoryStore) Seed(movies ...domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = append(s.movies, movies...)
}

// Create validates the draft, assigns a local id and appends the record.
func (s *MemoryStore) Create(draft domain.MovieDraft) (domain.Movie, error) {
	if err := draft.Validate(); err != nil {
		return domain.Movie{}, err
	}

	movie := domain.Movie{
		ID:             domain.NewLocalID(),
		Title:          draft.Title,
		Synopsis:       draft.Synopsis,
		Genres:         orEmpty(draft.Genres),
		CategoryTags:   orEmpty(draft.CategoryTags),
		Staff:          draft.Staff,
		WhereToWatch:   draft.WhereToWatch,
		ReleaseDate:    draft.ReleaseDate,
		PosterURL:      draft.PosterURL,
		BackdropURL:    draft.BackdropURL,
		WatchProviders: map[string]string{},
	}

	s.mu.Lock()
	s.movies = append(s.movies, movie)
	s.mu.Unlock()

	s.publish(domain.NewMovieCreatedEvent(movie))
	s.logger.Info("Local movie created",
		interfaces.String("id", movie.ID.String()),
		interfaces.String("title", movie.Title))

	return movie, nil
}

// Update merges the draft's non-zero fields into the stored record.
func (s *MemoryStore) Update(draft domain.MovieDraft) (domain.Movie, error) {
	id := domain.ParseRecordID(draft.ID)
	if id.IsExternal() {
		return domain.Movie{}, errors.ReadOnly("externally-sourced movies cannot be updated")
	}
	if err := draft.Validate(); err != nil {
		return domain.Movie{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(draft.ID)
	if idx < 0 {
		return domain.Movie{}, errors.NotFound("movie not found")
	}

	movie := s.movies[idx]
	movie.Title = draft.Title
	if draft.Synopsis != "" {
		movie.Synopsis = draft.Synopsis
	}
	if draft.Genres != nil {
		movie.Genres = orEmpty(draft.Genres)
	}
	if draft.CategoryTags != nil {
		movie.CategoryTags = orEmpty(draft.CategoryTags)
	}
	if draft.Staff != "" {
		movie.Staff = draft.Staff
	}
	if draft.WhereToWatch != "" {
		movie.WhereToWatch = draft.WhereToWatch
	}
	if draft.ReleaseDate != "" {
		movie.ReleaseDate = draft.ReleaseDate
	}
	if draft.PosterURL != "" {
		movie.PosterURL = draft.PosterURL
	}
	if draft.BackdropURL != "" {
		movie.BackdropURL = draft.BackdropURL
	}
	s.movies[idx] = movie

	return movie, nil
}

// Delete removes the record with the given id.
func (s *MemoryStore) Delete(id string) (bool, error) {
	recordID := domain.ParseRecordID(id)
	if recordID.IsExternal() {
		return false, errors.ReadOnly("externally-sourced movies cannot be deleted")
	}

	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}
	s.movies = append(s.movies[:idx], s.movies[idx+1:]...)
	s.mu.Unlock()

	s.publish(domain.NewMovieDeletedEvent(recordID))

	return true, nil
}

// FindByID returns the record with the given id, if present.
func (s *MemoryStore) FindByID(id string) (domain.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Movie{}, false
	}
	return s.movies[idx], true
}

// List returns all records in insertion order.
func (s *MemoryStore) List() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	movies := make([]domain.Movie, len(s.movies))
	copy(movies, s.movies)
	return movies
}

// indexOf finds a record by serialized id; callers hold the lock.
func (s *MemoryStore) indexOf(id string) int {
	for i, m := range s.movies {
		if m.ID.String() == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) publish(event interfaces.Event) {
	if s.bus != nil {
		s.bus.PublishAsync(context.Background(), event)
	}
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
