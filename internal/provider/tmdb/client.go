package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/internal/catalog/service"
	"github.com/kinomedia/kino/pkg/errors"
)

// DefaultBaseURL is the provider API host.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// Client is a TMDB API client. All endpoints are parameterized by a
// fixed locale/region pair. Any transport error or non-success
// response is reported as a provider-unavailable error.
type Client struct {
	baseURL    string
	apiKey     string
	language   string
	region     string
	httpClient *http.Client
}

// NewClient creates a new TMDB client.
func NewClient(baseURL, apiKey, language, region string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiKey:   apiKey,
		language: language,
		region:   region,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Browse lists a browse category page.
func (c *Client) Browse(ctx context.Context, category domain.Category, page int) (*domain.ProviderPage, error) {
	if !category.Valid() {
		category = domain.CategoryPopular
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result domain.ProviderPage
	if err := c.get(ctx, "/movie/"+string(category), params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Search performs a free-text title search.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.ProviderPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result domain.ProviderPage
	if err := c.get(ctx, "/search/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Discover performs a filtered discovery query. Genre ids are joined
// with commas, the provider's AND constraint: a result must carry all
// of them. Adult and video-only content is always excluded.
func (c *Client) Discover(ctx context.Context, query service.DiscoverQuery, page int) (*domain.ProviderPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("sort_by", query.SortBy)
	params.Set("include_adult", "false")
	params.Set("include_video", "false")

	if query.ReleaseDateFrom != "" {
		params.Set("primary_release_date.gte", query.ReleaseDateFrom)
	}
	if query.ReleaseDateTo != "" {
		params.Set("primary_release_date.lte", query.ReleaseDateTo)
	}
	if len(query.GenreIDs) > 0 {
		ids := make([]string, len(query.GenreIDs))
		for i, id := range query.GenreIDs {
			ids[i] = strconv.Itoa(id)
		}
		params.Set("with_genres", strings.Join(ids, ","))
	}
	if query.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(query.MinRating, 'f', -1, 64))
		params.Set("vote_count.gte", strconv.Itoa(query.MinVoteCount))
	}

	var result domain.ProviderPage
	if err := c.get(ctx, "/discover/movie", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetDetail retrieves the full detail record, including credits and
// watch-provider information, for a provider id.
func (c *Client) GetDetail(ctx context.Context, providerID string) (*domain.ProviderDetail, error) {
	params := url.Values{}
	params.Set("append_to_response", "credits,watch/providers")

	var result domain.ProviderDetail
	if err := c.get(ctx, "/movie/"+providerID, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetGenres retrieves the genre id to name table.
func (c *Client) GetGenres(ctx context.Context) ([]domain.Genre, error) {
	var result struct {
		Genres []domain.Genre `json:"genres"`
	}
	if err := c.get(ctx, "/genre/movie/list", url.Values{}, &result); err != nil {
		return nil, err
	}
	return result.Genres, nil
}

// get performs a GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("api_key", c.apiKey)
	params.Set("language", c.language)
	params.Set("region", c.region)

	requestURL := c.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeInternal, "creating request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeUnavailable, "executing request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Unavailable(fmt.Sprintf("unexpected status code: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrorTypeUnavailable, "decoding response", err)
	}

	return nil
}
