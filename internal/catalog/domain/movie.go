package domain

import (
	"fmt"
	"strings"
)

// Movie is the canonical catalog record. Records from the remote
// provider and the local store are both normalized into this shape.
type Movie struct {
	ID             RecordID          `json:"id"`
	ExternalID     string            `json:"external_id,omitempty"`
	Title          string            `json:"title"`
	Synopsis       string            `json:"synopsis"`
	Genres         []string          `json:"genres"`
	CategoryTags   []string          `json:"category_tags"`
	Staff          string            `json:"staff"`
	WhereToWatch   string            `json:"where_to_watch"`
	ReleaseDate    string            `json:"release_date"` // YYYY-MM-DD or empty
	PosterURL      string            `json:"poster_url"`
	BackdropURL    string            `json:"backdrop_url"`
	WatchProviders map[string]string `json:"watch_providers"`
	VoteAverage    float64           `json:"vote_average"`
	VoteCount      int               `json:"vote_count"`
	Popularity     float64           `json:"popularity"`
}

// IsExternal reports whether the movie originated from the remote
// provider. External movies are read-only in the local store.
func (m Movie) IsExternal() bool {
	return m.ID.IsExternal()
}

// ReleaseYear returns the year portion of the release date, or empty.
func (m Movie) ReleaseYear() string {
	if m.ReleaseDate == "" {
		return ""
	}
	year, _, _ := strings.Cut(m.ReleaseDate, "-")
	return year
}

// FormattedReleaseDate returns the release date as DD/MM/YYYY, or
// empty when no date is known.
func (m Movie) FormattedReleaseDate() string {
	parts := strings.Split(m.ReleaseDate, "-")
	if len(parts) != 3 {
		return ""
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// FormattedRating returns the vote average as "7.8/10", or "unrated"
// when there is no rating.
func (m Movie) FormattedRating() string {
	if m.VoteAverage == 0 {
		return "unrated"
	}
	return fmt.Sprintf("%.1f/10", m.VoteAverage)
}

// SafeImageURL returns the poster URL when it is absolute, falling
// back to the placeholder asset.
func (m Movie) SafeImageURL() string {
	if strings.HasPrefix(m.PosterURL, "http") {
		return m.PosterURL
	}
	if m.PosterURL != "" {
		return m.PosterURL
	}
	return "assets/images/placeholder.jpg"
}

// GenreText returns the genres as a comma-joined display string.
func (m Movie) GenreText() string {
	return strings.Join(m.Genres, ", ")
}

// CategoryText returns the category tags as a comma-joined display string.
func (m Movie) CategoryText() string {
	return strings.Join(m.CategoryTags, ", ")
}
