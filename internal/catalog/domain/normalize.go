package domain

import (
	"strconv"
	"strings"
)

// Image sizes requested from the provider's image host.
const (
	posterSize   = "w500"
	backdropSize = "w780"
)

// Normalizer converts raw provider records into canonical movies.
//
// The genre table is an explicit dependency: list-item records carry
// bare genre ids which are resolved to names through it. Normalization
// is pure and deterministic given the same table.
type Normalizer struct {
	genres       map[int]string
	region       string
	imageBaseURL string
}

// NewNormalizer creates a normalizer for the given genre table, watch
// region and image host.
func NewNormalizer(table []Genre, region, imageBaseURL string) *Normalizer {
	genres := make(map[int]string, len(table))
	for _, g := range table {
		genres[g.ID] = g.Name
	}
	return &Normalizer{
		genres:       genres,
		region:       region,
		imageBaseURL: strings.TrimSuffix(imageBaseURL, "/"),
	}
}

// Normalize converts a raw provider record into a Movie. When a detail
// record is supplied it takes precedence over the list item and
// contributes credits and watch-provider fields.
func (n *Normalizer) Normalize(raw ProviderRecord, detail *ProviderDetail) Movie {
	src := raw
	if detail != nil {
		src = detail.ProviderRecord
	}

	providerID := strconv.Itoa(src.ID)

	movie := Movie{
		ID:             ExternalID(providerID),
		ExternalID:     providerID,
		Title:          src.Title,
		Synopsis:       src.Overview,
		Genres:         n.resolveGenres(src),
		CategoryTags:   []string{},
		ReleaseDate:    src.ReleaseDate,
		PosterURL:      n.imageURL(src.PosterPath, posterSize),
		BackdropURL:    n.imageURL(src.BackdropPath, backdropSize),
		WatchProviders: map[string]string{},
		VoteAverage:    src.VoteAverage,
		VoteCount:      src.VoteCount,
		Popularity:     src.Popularity,
	}

	if detail != nil {
		movie.Staff = directorCredit(detail.Credits)
		movie.WhereToWatch, movie.WatchProviders = n.watchOffers(detail.WatchProviders)
	}

	return movie
}

// resolveGenres always yields a slice, never a scalar. Full genre
// objects are used directly; bare ids are resolved through the table
// and unresolved ids are dropped.
func (n *Normalizer) resolveGenres(src ProviderRecord) []string {
	if len(src.Genres) > 0 {
		names := make([]string, len(src.Genres))
		for i, g := range src.Genres {
			names[i] = g.Name
		}
		return names
	}

	names := make([]string, 0, len(src.GenreIDs))
	for _, id := range src.GenreIDs {
		if name, ok := n.genres[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// directorCredit finds the first crew entry credited as director.
func directorCredit(credits Credits) string {
	for _, c := range credits.Crew {
		if c.Job == "Director" {
			return "Director: " + c.Name
		}
	}
	return ""
}

// watchOffers collects the subscription streaming offers for the
// configured region: a joined display list and a machine mapping of
// lower-cased provider name to provider code.
func (n *Normalizer) watchOffers(providers WatchProviders) (string, map[string]string) {
	links := map[string]string{}

	region, ok := providers.Results[n.region]
	if !ok || len(region.Flatrate) == 0 {
		return "", links
	}

	names := make([]string, 0, len(region.Flatrate))
	for _, offer := range region.Flatrate {
		names = append(names, offer.ProviderName)
		links[strings.ToLower(offer.ProviderName)] = strconv.Itoa(offer.ProviderID)
	}
	return strings.Join(names, ", "), links
}

// imageURL joins a relative provider image path with the image host
// and size prefix. Empty paths stay empty.
func (n *Normalizer) imageURL(path, size string) string {
	if path == "" {
		return ""
	}
	return n.imageBaseURL + "/" + size + path
}
