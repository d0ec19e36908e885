package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/internal/catalog/repository"
	"github.com/kinomedia/kino/pkg/errors"
	"github.com/kinomedia/kino/pkg/interfaces"
)

// minVoteCount is the vote-count floor applied alongside a minimum
// rating filter, excluding titles with too small a sample to rate.
const minVoteCount = 100

// sortByPopularity is the fixed discovery sort order.
const sortByPopularity = "popularity.desc"

// fallbackGenreTable is used when the provider's genre table cannot be
// fetched at startup, so genre resolution keeps working offline. Names
// match the provider's pt-BR localization.
var fallbackGenreTable = []domain.Genre{
	{ID: 28, Name: "Ação"},
	{ID: 12, Name: "Aventura"},
	{ID: 16, Name: "Animação"},
	{ID: 35, Name: "Comédia"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentário"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Família"},
	{ID: 14, Name: "Fantasia"},
	{ID: 36, Name: "História"},
	{ID: 27, Name: "Terror"},
	{ID: 10402, Name: "Música"},
	{ID: 9648, Name: "Mistério"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Ficção Científica"},
	{ID: 10770, Name: "Cinema TV"},
	{ID: 53, Name: "Suspense"},
	{ID: 10752, Name: "Guerra"},
	{ID: 37, Name: "Faroeste"},
}

// DataSource routes logical catalog queries to the remote provider or
// the local store and normalizes both into uniform pages.
//
// Provider failures on list queries degrade to the local store rather
// than surfacing an error; users keep a browsable catalog during
// provider outages.
type DataSource struct {
	provider MetadataProvider
	local    repository.Store
	cache    interfaces.Cache
	logger   interfaces.Logger

	region         string
	imageBaseURL   string
	detailCacheTTL time.Duration

	mu         sync.RWMutex
	genreTable []domain.Genre
	normalizer *domain.Normalizer
}

// NewDataSource creates a data source. The genre table is fetched once
// from the provider, falling back to the bundled table when the
// provider is unreachable; RefreshGenres re-fetches on demand.
func NewDataSource(
	ctx context.Context,
	provider MetadataProvider,
	local repository.Store,
	cache interfaces.Cache,
	logger interfaces.Logger,
	region string,
	imageBaseURL string,
	detailCacheTTL time.Duration,
) *DataSource {
	ds := &DataSource{
		provider:       provider,
		local:          local,
		cache:          cache,
		logger:         logger,
		region:         region,
		imageBaseURL:   imageBaseURL,
		detailCacheTTL: detailCacheTTL,
	}

	if err := ds.RefreshGenres(ctx); err != nil {
		logger.Warn("Genre table unavailable, using fallback table", interfaces.Error(err))
		ds.setGenreTable(fallbackGenreTable)
	}

	return ds
}

// RefreshGenres re-fetches the genre table from the provider.
func (ds *DataSource) RefreshGenres(ctx context.Context) error {
	table, err := ds.provider.GetGenres(ctx)
	if err != nil {
		return err
	}
	ds.setGenreTable(table)
	return nil
}

// GenreTable returns the current genre table.
func (ds *DataSource) GenreTable() []domain.Genre {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	table := make([]domain.Genre, len(ds.genreTable))
	copy(table, ds.genreTable)
	return table
}

func (ds *DataSource) setGenreTable(table []domain.Genre) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.genreTable = table
	ds.normalizer = domain.NewNormalizer(table, ds.region, ds.imageBaseURL)
}

func (ds *DataSource) currentNormalizer() *domain.Normalizer {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.normalizer
}

// FetchCatalog resolves a logical query into one page of movies.
// Routing priority: non-blank search text, then active filters, then
// the browse category.
func (ds *DataSource) FetchCatalog(ctx context.Context, query Query) (*Page, error) {
	page := query.Page
	if page < 1 {
		page = 1
	}

	var (
		result *domain.ProviderPage
		err    error
	)

	switch {
	case strings.TrimSpace(query.SearchText) != "":
		result, err = ds.provider.Search(ctx, strings.TrimSpace(query.SearchText), page)
	case query.Filters.Active():
		result, err = ds.provider.Discover(ctx, buildDiscoverQuery(query.Filters), page)
	default:
		category := query.Category
		if !category.Valid() {
			category = domain.CategoryPopular
		}
		result, err = ds.provider.Browse(ctx, category, page)
	}

	if err != nil {
		if errors.IsUnavailable(err) {
			ds.logger.Warn("Provider unavailable, serving local catalog", interfaces.Error(err))
			return ds.localFallback(), nil
		}
		return nil, err
	}

	normalizer := ds.currentNormalizer()
	movies := make([]domain.Movie, 0, len(result.Results))
	for _, raw := range result.Results {
		movies = append(movies, normalizer.Normalize(raw, nil))
	}

	return &Page{
		Movies:      movies,
		TotalPages:  result.TotalPages,
		CurrentPage: result.Page,
		HasMore:     result.Page < result.TotalPages,
	}, nil
}

// GetDetail resolves a full movie record by serialized id. Local ids
// are served from the local store; external ids from the provider,
// with a short-lived cache in front.
func (ds *DataSource) GetDetail(ctx context.Context, id string) (domain.Movie, error) {
	recordID := domain.ParseRecordID(id)

	if !recordID.IsExternal() {
		movie, ok := ds.local.FindByID(id)
		if !ok {
			return domain.Movie{}, errors.NotFound("movie details not found")
		}
		return movie, nil
	}

	cacheKey := "movie:detail:" + recordID.Value
	if cached, err := ds.cache.Get(ctx, cacheKey); err == nil {
		if movie, ok := cached.(domain.Movie); ok {
			return movie, nil
		}
	}

	detail, err := ds.provider.GetDetail(ctx, recordID.Value)
	if err != nil {
		if errors.IsUnavailable(err) {
			return domain.Movie{}, errors.NotFound("movie details not found")
		}
		return domain.Movie{}, err
	}

	movie := ds.currentNormalizer().Normalize(detail.ProviderRecord, detail)
	ds.cache.Set(ctx, cacheKey, movie, ds.detailCacheTTL)

	return movie, nil
}

// localFallback serves the local store as a single page.
func (ds *DataSource) localFallback() *Page {
	movies := ds.local.List()
	return &Page{
		Movies:      movies,
		TotalPages:  1,
		CurrentPage: 1,
		HasMore:     false,
	}
}

// buildDiscoverQuery converts catalog filters into provider discovery
// parameters. Year bounds become inclusive release-date bounds; genre
// ids are an AND constraint; a minimum rating brings a vote-count
// floor so low-sample outliers are excluded.
func buildDiscoverQuery(filters domain.Filters) DiscoverQuery {
	query := DiscoverQuery{SortBy: sortByPopularity}

	if filters.YearFrom != "" {
		query.ReleaseDateFrom = filters.YearFrom + "-01-01"
	}
	if filters.YearTo != "" {
		query.ReleaseDateTo = filters.YearTo + "-12-31"
	}
	if len(filters.GenreIDs) > 0 {
		query.GenreIDs = filters.GenreIDs
	}
	if filters.MinRating > 0 {
		query.MinRating = filters.MinRating
		query.MinVoteCount = minVoteCount
	}

	return query
}
