package service

import (
	"context"

	"github.com/kinomedia/kino/internal/catalog/domain"
)

// DiscoverQuery is a filtered discovery request sent to the provider.
type DiscoverQuery struct {
	ReleaseDateFrom string // inclusive lower bound, YYYY-MM-DD
	ReleaseDateTo   string // inclusive upper bound, YYYY-MM-DD
	GenreIDs        []int  // a result must carry all listed genres
	MinRating       float64
	MinVoteCount    int
	SortBy          string
}

// MetadataProvider is the remote movie metadata provider boundary.
type MetadataProvider interface {
	// Browse lists a browse category page.
	Browse(ctx context.Context, category domain.Category, page int) (*domain.ProviderPage, error)

	// Search performs a free-text title search.
	Search(ctx context.Context, query string, page int) (*domain.ProviderPage, error)

	// Discover performs a filtered discovery query.
	Discover(ctx context.Context, query DiscoverQuery, page int) (*domain.ProviderPage, error)

	// GetDetail retrieves the full detail record for a provider id.
	GetDetail(ctx context.Context, providerID string) (*domain.ProviderDetail, error)

	// GetGenres retrieves the genre id to name table.
	GetGenres(ctx context.Context) ([]domain.Genre, error)
}

// Query is a logical catalog request. Routing priority: non-blank
// search text wins, then active filters, then the browse category.
type Query struct {
	SearchText string
	Category   domain.Category
	Filters    domain.Filters
	Page       int
}

// Page is one uniform page of catalog results, regardless of which
// source produced it.
type Page struct {
	Movies      []domain.Movie
	TotalPages  int
	CurrentPage int
	HasMore     bool
}

// CatalogSource produces catalog pages for logical queries.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, query Query) (*Page, error)
}
