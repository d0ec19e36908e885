package domain

import (
	"strings"
	"time"
)

// MovieDraft is the input for creating or updating a locally-authored
// movie. On update, only non-zero fields are merged into the target.
type MovieDraft struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Synopsis     string   `json:"synopsis"`
	Genres       []string `json:"genres"`
	CategoryTags []string `json:"category_tags"`
	Staff        string   `json:"staff"`
	WhereToWatch string   `json:"where_to_watch"`
	ReleaseDate  string   `json:"release_date"`
	PosterURL    string   `json:"poster_url"`
	BackdropURL  string   `json:"backdrop_url"`
}

// Validate checks the draft against the authoring rules and reports
// every violation in one aggregated error.
func (d MovieDraft) Validate() error {
	var violations Violations

	if strings.TrimSpace(d.Title) == "" {
		violations.Add("title is required")
	}
	if d.ReleaseDate != "" {
		if _, err := time.Parse("2006-01-02", d.ReleaseDate); err != nil {
			violations.Add("release date must be a valid YYYY-MM-DD date")
		}
	}

	return violations.Err()
}
