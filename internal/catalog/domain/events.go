package domain

import "time"

// CatalogRefreshedEvent is published when a fetch merges into state.
type CatalogRefreshedEvent struct {
	Page      int
	Appended  bool
	Count     int
	timestamp int64
}

func NewCatalogRefreshedEvent(page int, appended bool, count int) *CatalogRefreshedEvent {
	return &CatalogRefreshedEvent{
		Page:      page,
		Appended:  appended,
		Count:     count,
		timestamp: time.Now().Unix(),
	}
}

func (e *CatalogRefreshedEvent) EventType() string {
	return "catalog.refreshed"
}

func (e *CatalogRefreshedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *CatalogRefreshedEvent) AggregateID() string {
	return "catalog"
}

// CatalogFetchFailedEvent is published when a fetch fails outright.
// Provider degradation to the local store is not a failure and does
// not produce this event.
type CatalogFetchFailedEvent struct {
	Err       error
	timestamp int64
}

func NewCatalogFetchFailedEvent(err error) *CatalogFetchFailedEvent {
	return &CatalogFetchFailedEvent{
		Err:       err,
		timestamp: time.Now().Unix(),
	}
}

func (e *CatalogFetchFailedEvent) EventType() string {
	return "catalog.fetch_failed"
}

func (e *CatalogFetchFailedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *CatalogFetchFailedEvent) AggregateID() string {
	return "catalog"
}

// MovieCreatedEvent is published when a local movie is created.
type MovieCreatedEvent struct {
	Movie     Movie
	timestamp int64
}

func NewMovieCreatedEvent(movie Movie) *MovieCreatedEvent {
	return &MovieCreatedEvent{Movie: movie, timestamp: time.Now().Unix()}
}

func (e *MovieCreatedEvent) EventType() string {
	return "movie.created"
}

func (e *MovieCreatedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *MovieCreatedEvent) AggregateID() string {
	return e.Movie.ID.String()
}

// MovieDeletedEvent is published when a local movie is deleted.
type MovieDeletedEvent struct {
	ID        RecordID
	timestamp int64
}

func NewMovieDeletedEvent(id RecordID) *MovieDeletedEvent {
	return &MovieDeletedEvent{ID: id, timestamp: time.Now().Unix()}
}

func (e *MovieDeletedEvent) EventType() string {
	return "movie.deleted"
}

func (e *MovieDeletedEvent) Timestamp() int64 {
	return e.timestamp
}

func (e *MovieDeletedEvent) AggregateID() string {
	return e.ID.String()
}
