package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kinomedia/kino/internal/catalog/domain"
)

func TestMovie_ReleaseYear(t *testing.T) {
	assert.Equal(t, "1999", domain.Movie{ReleaseDate: "1999-03-31"}.ReleaseYear())
	assert.Empty(t, domain.Movie{}.ReleaseYear())
}

func TestMovie_FormattedReleaseDate(t *testing.T) {
	assert.Equal(t, "31/03/1999", domain.Movie{ReleaseDate: "1999-03-31"}.FormattedReleaseDate())
	assert.Empty(t, domain.Movie{}.FormattedReleaseDate())
	assert.Empty(t, domain.Movie{ReleaseDate: "1999"}.FormattedReleaseDate())
}

func TestMovie_FormattedRating(t *testing.T) {
	assert.Equal(t, "7.8/10", domain.Movie{VoteAverage: 7.84}.FormattedRating())
	assert.Equal(t, "unrated", domain.Movie{}.FormattedRating())
}

func TestMovie_SafeImageURL(t *testing.T) {
	assert.Equal(t, "https://img.example/poster.jpg",
		domain.Movie{PosterURL: "https://img.example/poster.jpg"}.SafeImageURL())
	assert.Equal(t, "assets/images/capa.jpg",
		domain.Movie{PosterURL: "assets/images/capa.jpg"}.SafeImageURL())
	assert.Equal(t, "assets/images/placeholder.jpg", domain.Movie{}.SafeImageURL())
}

func TestMovie_DisplayTexts(t *testing.T) {
	m := domain.Movie{
		Genres:       []string{"Ação", "Aventura"},
		CategoryTags: []string{"Destaque"},
	}

	assert.Equal(t, "Ação, Aventura", m.GenreText())
	assert.Equal(t, "Destaque", m.CategoryText())
}
