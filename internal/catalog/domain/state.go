package domain

import "encoding/json"

// Category is a provider browse category.
type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryNowPlaying Category = "now_playing"
	CategoryTopRated   Category = "top_rated"
	CategoryUpcoming   Category = "upcoming"
)

// Valid reports whether the category is one of the browse categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryPopular, CategoryNowPlaying, CategoryTopRated, CategoryUpcoming:
		return true
	}
	return false
}

// Filters holds the discovery filter fields.
type Filters struct {
	YearFrom  string  `json:"year_from"`
	YearTo    string  `json:"year_to"`
	GenreIDs  []int   `json:"genre_ids"`
	MinRating float64 `json:"min_rating"`
}

// DefaultFilters returns the all-default filter set.
func DefaultFilters() Filters {
	return Filters{GenreIDs: []int{}}
}

// Active reports whether any filter field is non-default.
func (f Filters) Active() bool {
	return f.YearFrom != "" || f.YearTo != "" || len(f.GenreIDs) > 0 || f.MinRating > 0
}

func (f Filters) clone() Filters {
	ids := make([]int, len(f.GenreIDs))
	copy(ids, f.GenreIDs)
	f.GenreIDs = ids
	return f
}

// State is the immutable catalog screen state. Every transition
// returns a new value; a previously returned State is never mutated.
type State struct {
	movies           []Movie
	loading          bool
	searchText       string
	selectedCategory Category
	currentPage      int
	hasMorePages     bool
	filters          Filters
	usingFilters     bool
}

// NewState creates the initial state for a catalog screen session.
func NewState() State {
	return State{
		movies:           []Movie{},
		selectedCategory: CategoryPopular,
		currentPage:      1,
		hasMorePages:     true,
		filters:          DefaultFilters(),
	}
}

// Movies returns a copy of the accumulated movie list.
func (s State) Movies() []Movie {
	movies := make([]Movie, len(s.movies))
	copy(movies, s.movies)
	return movies
}

// MovieCount returns the number of accumulated movies.
func (s State) MovieCount() int {
	return len(s.movies)
}

// Loading reports whether a fetch is in progress.
func (s State) Loading() bool {
	return s.loading
}

// SearchText returns the current search text.
func (s State) SearchText() string {
	return s.searchText
}

// SelectedCategory returns the selected browse category.
func (s State) SelectedCategory() Category {
	return s.selectedCategory
}

// CurrentPage returns the current page, starting at 1.
func (s State) CurrentPage() int {
	return s.currentPage
}

// HasMorePages reports whether further pages can be requested.
func (s State) HasMorePages() bool {
	return s.hasMorePages
}

// Filters returns a copy of the active filter set.
func (s State) Filters() Filters {
	return s.filters.clone()
}

// UsingFilters reports whether a filter set has been applied.
func (s State) UsingFilters() bool {
	return s.usingFilters
}

// HasActiveFilters reports whether any filter field is non-default.
func (s State) HasActiveFilters() bool {
	return s.filters.Active()
}

// ActiveFiltersCount counts active filters for display: the year range
// counts as one when either bound is set, each selected genre counts
// individually, and a minimum rating counts as one.
func (s State) ActiveFiltersCount() int {
	count := 0
	if s.filters.YearFrom != "" || s.filters.YearTo != "" {
		count++
	}
	count += len(s.filters.GenreIDs)
	if s.filters.MinRating > 0 {
		count++
	}
	return count
}

// ResetPagination returns to page one with an empty movie list.
func (s State) ResetPagination() State {
	s.currentPage = 1
	s.hasMorePages = true
	s.movies = []Movie{}
	return s
}

// NextPage advances to the next page.
func (s State) NextPage() State {
	s.currentPage++
	return s
}

// SetMovies replaces the accumulated movie list.
func (s State) SetMovies(movies []Movie) State {
	copied := make([]Movie, len(movies))
	copy(copied, movies)
	s.movies = copied
	return s
}

// AddMovies appends to the accumulated movie list, preserving order.
// Duplicates are not removed; callers must not re-request a page that
// was already merged.
func (s State) AddMovies(movies []Movie) State {
	combined := make([]Movie, 0, len(s.movies)+len(movies))
	combined = append(combined, s.movies...)
	combined = append(combined, movies...)
	s.movies = combined
	return s
}

// SetLoading sets the loading flag.
func (s State) SetLoading(loading bool) State {
	s.loading = loading
	return s
}

// SetHasMore sets whether further pages can be requested.
func (s State) SetHasMore(hasMore bool) State {
	s.hasMorePages = hasMore
	return s
}

// SetSearchText updates the search text and resets pagination.
func (s State) SetSearchText(text string) State {
	s.searchText = text
	return s.ResetPagination()
}

// SetCategory selects a browse category and resets pagination.
func (s State) SetCategory(category Category) State {
	s.selectedCategory = category
	return s.ResetPagination()
}

// UpdateFilters shallow-merges the given filters into the active set,
// marks filters as in use and resets pagination.
func (s State) UpdateFilters(updates Filters) State {
	merged := s.filters.clone()
	if updates.YearFrom != "" {
		merged.YearFrom = updates.YearFrom
	}
	if updates.YearTo != "" {
		merged.YearTo = updates.YearTo
	}
	if updates.GenreIDs != nil {
		ids := make([]int, len(updates.GenreIDs))
		copy(ids, updates.GenreIDs)
		merged.GenreIDs = ids
	}
	if updates.MinRating > 0 {
		merged.MinRating = updates.MinRating
	}
	s.filters = merged
	s.usingFilters = true
	return s.ResetPagination()
}

// SetFilters replaces the active filter set wholesale, marks filters
// as in use and resets pagination.
func (s State) SetFilters(filters Filters) State {
	s.filters = filters.clone()
	s.usingFilters = true
	return s.ResetPagination()
}

// ClearFilters returns every filter field to its default and resets
// pagination.
func (s State) ClearFilters() State {
	s.filters = DefaultFilters()
	s.usingFilters = false
	return s.ResetPagination()
}

// Snapshot is the serializable subset of State persisted between
// sessions. The movie list and loading flag are intentionally omitted.
type Snapshot struct {
	SearchText       string   `json:"search_text"`
	SelectedCategory Category `json:"selected_category"`
	CurrentPage      int      `json:"current_page"`
	HasMorePages     bool     `json:"has_more_pages"`
	Filters          Filters  `json:"filters"`
	UsingFilters     bool     `json:"using_filters"`
}

// Snapshot returns the serializable subset of the state.
func (s State) Snapshot() Snapshot {
	return Snapshot{
		SearchText:       s.searchText,
		SelectedCategory: s.selectedCategory,
		CurrentPage:      s.currentPage,
		HasMorePages:     s.hasMorePages,
		Filters:          s.filters.clone(),
		UsingFilters:     s.usingFilters,
	}
}

// MarshalJSON serializes the snapshot subset of the state.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// RestoreState rebuilds a state from a persisted snapshot. Invalid
// fields fall back to their defaults.
func RestoreState(snap Snapshot) State {
	s := NewState()
	s.searchText = snap.SearchText
	if snap.SelectedCategory.Valid() {
		s.selectedCategory = snap.SelectedCategory
	}
	if snap.CurrentPage >= 1 {
		s.currentPage = snap.CurrentPage
	}
	s.hasMorePages = snap.HasMorePages
	if snap.Filters.GenreIDs == nil {
		snap.Filters.GenreIDs = []int{}
	}
	s.filters = snap.Filters.clone()
	s.usingFilters = snap.UsingFilters
	return s
}
