package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinomedia/kino/internal/catalog/service"
	"github.com/kinomedia/kino/internal/provider/tmdb"
	"github.com/kinomedia/kino/pkg/errors"
)

const listPayload = `{
	"page": 1,
	"results": [
		{"id": 603, "title": "Matrix", "genre_ids": [28, 878], "vote_average": 8.2}
	],
	"total_pages": 5,
	"total_results": 100
}`

// recordingServer captures the path and query of each request and
// answers with a fixed payload.
func recordingServer(t *testing.T, payload string) (*httptest.Server, *[]*url.URL) {
	t.Helper()
	var requests []*url.URL
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func newTestClient(baseURL string) *tmdb.Client {
	return tmdb.NewClient(baseURL, "test-key", "pt-BR", "BR", time.Second)
}

func TestClient_Browse(t *testing.T) {
	server, requests := recordingServer(t, listPayload)
	client := newTestClient(server.URL)

	page, err := client.Browse(context.Background(), "popular", 2)

	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalPages)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "Matrix", page.Results[0].Title)
	assert.Equal(t, []int{28, 878}, page.Results[0].GenreIDs)

	req := (*requests)[0]
	assert.Equal(t, "/movie/popular", req.Path)
	query := req.Query()
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "test-key", query.Get("api_key"))
	assert.Equal(t, "pt-BR", query.Get("language"))
	assert.Equal(t, "BR", query.Get("region"))
}

func TestClient_Browse_InvalidCategoryDefaultsToPopular(t *testing.T) {
	server, requests := recordingServer(t, listPayload)
	client := newTestClient(server.URL)

	_, err := client.Browse(context.Background(), "bogus", 1)

	require.NoError(t, err)
	assert.Equal(t, "/movie/popular", (*requests)[0].Path)
}

func TestClient_Search(t *testing.T) {
	server, requests := recordingServer(t, listPayload)
	client := newTestClient(server.URL)

	_, err := client.Search(context.Background(), "o auto da compadecida", 1)

	require.NoError(t, err)
	req := (*requests)[0]
	assert.Equal(t, "/search/movie", req.Path)
	assert.Equal(t, "o auto da compadecida", req.Query().Get("query"))
}

func TestClient_Discover_Params(t *testing.T) {
	server, requests := recordingServer(t, listPayload)
	client := newTestClient(server.URL)

	_, err := client.Discover(context.Background(), service.DiscoverQuery{
		ReleaseDateFrom: "1990-01-01",
		ReleaseDateTo:   "1999-12-31",
		GenreIDs:        []int{28, 12, 878},
		MinRating:       7.5,
		MinVoteCount:    100,
		SortBy:          "popularity.desc",
	}, 3)

	require.NoError(t, err)
	req := (*requests)[0]
	assert.Equal(t, "/discover/movie", req.Path)
	query := req.Query()
	assert.Equal(t, "3", query.Get("page"))
	assert.Equal(t, "popularity.desc", query.Get("sort_by"))
	assert.Equal(t, "false", query.Get("include_adult"))
	assert.Equal(t, "false", query.Get("include_video"))
	assert.Equal(t, "1990-01-01", query.Get("primary_release_date.gte"))
	assert.Equal(t, "1999-12-31", query.Get("primary_release_date.lte"))
	// Comma-joined ids are the provider's AND constraint.
	assert.Equal(t, "28,12,878", query.Get("with_genres"))
	assert.Equal(t, "7.5", query.Get("vote_average.gte"))
	assert.Equal(t, "100", query.Get("vote_count.gte"))
}

func TestClient_Discover_OmitsUnsetFilters(t *testing.T) {
	server, requests := recordingServer(t, listPayload)
	client := newTestClient(server.URL)

	_, err := client.Discover(context.Background(), service.DiscoverQuery{SortBy: "popularity.desc"}, 1)

	require.NoError(t, err)
	query := (*requests)[0].Query()
	assert.False(t, query.Has("primary_release_date.gte"))
	assert.False(t, query.Has("primary_release_date.lte"))
	assert.False(t, query.Has("with_genres"))
	assert.False(t, query.Has("vote_average.gte"))
	assert.False(t, query.Has("vote_count.gte"))
}

func TestClient_GetDetail(t *testing.T) {
	const detailPayload = `{
		"id": 603,
		"title": "Matrix",
		"genres": [{"id": 878, "name": "Ficção Científica"}],
		"credits": {"crew": [{"name": "Lana Wachowski", "job": "Director"}]},
		"watch/providers": {"results": {"BR": {"flatrate": [{"provider_id": 8, "provider_name": "Netflix"}]}}}
	}`
	server, requests := recordingServer(t, detailPayload)
	client := newTestClient(server.URL)

	detail, err := client.GetDetail(context.Background(), "603")

	require.NoError(t, err)
	assert.Equal(t, "/movie/603", (*requests)[0].Path)
	assert.Equal(t, "credits,watch/providers", (*requests)[0].Query().Get("append_to_response"))
	assert.Equal(t, "Matrix", detail.Title)
	require.Len(t, detail.Credits.Crew, 1)
	assert.Equal(t, "Director", detail.Credits.Crew[0].Job)
	assert.Len(t, detail.WatchProviders.Results["BR"].Flatrate, 1)
}

func TestClient_GetGenres(t *testing.T) {
	server, requests := recordingServer(t, `{"genres": [{"id": 28, "name": "Ação"}]}`)
	client := newTestClient(server.URL)

	genres, err := client.GetGenres(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/genre/movie/list", (*requests)[0].Path)
	require.Len(t, genres, 1)
	assert.Equal(t, "Ação", genres[0].Name)
}

func TestClient_NonSuccessStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)
	client := newTestClient(server.URL)

	_, err := client.Browse(context.Background(), "popular", 1)

	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestClient_TransportErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := newTestClient(server.URL)

	_, err := client.Browse(context.Background(), "popular", 1)

	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestClient_MalformedBodyIsUnavailable(t *testing.T) {
	server, _ := recordingServer(t, `{"page": `)
	client := newTestClient(server.URL)

	_, err := client.Browse(context.Background(), "popular", 1)

	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}
