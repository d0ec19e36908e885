package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/internal/catalog/service"
	"github.com/kinomedia/kino/pkg/errors"
	"github.com/kinomedia/kino/pkg/events"
	"github.com/kinomedia/kino/pkg/logger"
)

// fakeSource is a scriptable catalog source. Calls can be made to block
// until released so in-flight behavior is observable.
type fakeSource struct {
	mu      sync.Mutex
	calls   []service.Query
	results []fetchResult
	block   chan struct{}
}

type fetchResult struct {
	page *service.Page
	err  error
}

func newFakeSource() *fakeSource {
	return &fakeSource{}
}

func (f *fakeSource) enqueue(page *service.Page, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, fetchResult{page: page, err: err})
}

// blockNext makes subsequent fetches wait on the returned release func.
func (f *fakeSource) blockNext() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.block = make(chan struct{})
	release := f.block
	return func() { close(release) }
}

func (f *fakeSource) FetchCatalog(ctx context.Context, query service.Query) (*service.Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	block := f.block
	f.block = nil
	var result fetchResult
	if len(f.results) > 0 {
		result = f.results[0]
		f.results = f.results[1:]
	} else {
		result = fetchResult{page: &service.Page{
			Movies:      []domain.Movie{},
			TotalPages:  1,
			CurrentPage: query.Page,
			HasMore:     false,
		}}
	}
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return result.page, result.err
}

func (f *fakeSource) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeSource) call(i int) service.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func pageOf(current, total int, titles ...string) *service.Page {
	movies := make([]domain.Movie, len(titles))
	for i, title := range titles {
		movies[i] = domain.Movie{ID: domain.ExternalID(title), Title: title}
	}
	return &service.Page{
		Movies:      movies,
		TotalPages:  total,
		CurrentPage: current,
		HasMore:     current < total,
	}
}

type ControllerTestSuite struct {
	suite.Suite

	ctx        context.Context
	source     *fakeSource
	bus        *events.InMemoryEventBus
	controller *service.Controller
}

func (suite *ControllerTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.source = newFakeSource()
	suite.bus = events.NewInMemoryEventBus(logger.NewNoopLogger())
	suite.controller = service.NewController(
		suite.source,
		suite.bus,
		logger.NewNoopLogger(),
		10*time.Millisecond,
	)
}

func (suite *ControllerTestSuite) TearDownTest() {
	suite.controller.Close()
	suite.bus.Stop()
}

func (suite *ControllerTestSuite) TestInit_LoadsPageOne() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a", "b"), nil)

	// Act
	suite.controller.Init(suite.ctx)

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal(1, state.CurrentPage())
	suite.Equal(2, state.MovieCount())
	suite.True(state.HasMorePages())
	suite.False(state.Loading())
	suite.Equal(1, suite.source.call(0).Page)
}

func (suite *ControllerTestSuite) TestOnCategoryChange_ResetsAndReloads() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a"), nil)
	suite.controller.Init(suite.ctx)
	suite.source.enqueue(pageOf(1, 2, "x", "y"), nil)

	// Act
	suite.controller.OnCategoryChange(suite.ctx, domain.CategoryTopRated)

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal(domain.CategoryTopRated, state.SelectedCategory())
	suite.Equal(1, state.CurrentPage())
	suite.Equal(2, state.MovieCount())
	suite.Equal(domain.CategoryTopRated, suite.source.call(1).Category)
}

func (suite *ControllerTestSuite) TestOnLoadMore_AppendsAndAdvancesPage() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a", "b"), nil)
	suite.controller.Init(suite.ctx)
	suite.source.enqueue(pageOf(2, 3, "c"), nil)

	// Act
	suite.controller.OnLoadMoreRequested(suite.ctx)

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal(2, state.CurrentPage())
	suite.Equal(3, state.MovieCount())
	suite.Equal("c", state.Movies()[2].Title)
	suite.True(state.HasMorePages())
	suite.Equal(2, suite.source.call(1).Page)
}

func (suite *ControllerTestSuite) TestOnLoadMore_DroppedOnLastPage() {
	// Arrange
	suite.source.enqueue(pageOf(1, 1, "a"), nil)
	suite.controller.Init(suite.ctx)

	// Act
	suite.controller.OnLoadMoreRequested(suite.ctx)

	// Assert: no second fetch was issued.
	suite.Equal(1, suite.source.callCount())
}

func (suite *ControllerTestSuite) TestOnLoadMore_DroppedWhileInFlight() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a"), nil)
	suite.controller.Init(suite.ctx)

	release := suite.source.blockNext()
	suite.source.enqueue(pageOf(2, 3, "b"), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		suite.controller.OnLoadMoreRequested(suite.ctx)
	}()

	// Wait for the fetch to be in flight.
	suite.Eventually(func() bool {
		return suite.source.callCount() == 2
	}, time.Second, time.Millisecond)

	// Act: a second request while the first is still running.
	suite.controller.OnLoadMoreRequested(suite.ctx)
	release()
	wg.Wait()

	// Assert: the concurrent request was dropped, one page was merged.
	suite.Equal(2, suite.source.callCount())
	suite.Equal(2, suite.controller.CurrentState().CurrentPage())
}

func (suite *ControllerTestSuite) TestFetchFailure_PreservesMovies() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a", "b"), nil)
	suite.controller.Init(suite.ctx)
	suite.source.enqueue(nil, errors.Internal("boom"))

	// Act
	suite.controller.OnLoadMoreRequested(suite.ctx)

	// Assert: loading cleared, list and page untouched.
	state := suite.controller.CurrentState()
	suite.False(state.Loading())
	suite.Equal(2, state.MovieCount())
	suite.Equal(1, state.CurrentPage())
}

func (suite *ControllerTestSuite) TestSearchDebounce_CollapsesKeystrokes() {
	// Act: a burst of keystrokes inside the debounce window.
	suite.controller.OnSearchTextChange(suite.ctx, "m")
	suite.controller.OnSearchTextChange(suite.ctx, "ma")
	suite.controller.OnSearchTextChange(suite.ctx, "mat")

	// Assert: exactly one fetch, carrying the final text.
	suite.Eventually(func() bool {
		return suite.source.callCount() == 1
	}, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	suite.Equal(1, suite.source.callCount())
	suite.Equal("mat", suite.source.call(0).SearchText)
	suite.Equal(1, suite.source.call(0).Page)
}

func (suite *ControllerTestSuite) TestSearchTextChange_ResetsImmediately() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a"), nil)
	suite.controller.Init(suite.ctx)

	// Act: state resets before the debounced fetch fires.
	suite.controller.OnSearchTextChange(suite.ctx, "batman")

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal("batman", state.SearchText())
	suite.Equal(1, state.CurrentPage())
	suite.Empty(state.Movies())
}

func (suite *ControllerTestSuite) TestStateChangeDuringFetch_TriggersFreshFetch() {
	// Arrange: block the initial fetch, change category meanwhile.
	release := suite.source.blockNext()
	suite.source.enqueue(pageOf(1, 3, "stale"), nil)
	suite.source.enqueue(pageOf(1, 2, "fresh"), nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		suite.controller.Init(suite.ctx)
	}()
	suite.Eventually(func() bool {
		return suite.source.callCount() == 1
	}, time.Second, time.Millisecond)

	// Act
	suite.controller.OnCategoryChange(suite.ctx, domain.CategoryUpcoming)
	release()
	wg.Wait()

	// Assert: the stale result was discarded and a fresh fetch ran for
	// the new category.
	suite.Eventually(func() bool {
		return suite.source.callCount() == 2
	}, time.Second, time.Millisecond)
	state := suite.controller.CurrentState()
	suite.Equal(domain.CategoryUpcoming, state.SelectedCategory())
	suite.Require().Equal(1, state.MovieCount())
	suite.Equal("fresh", state.Movies()[0].Title)
	suite.Equal(domain.CategoryUpcoming, suite.source.call(1).Category)
}

func (suite *ControllerTestSuite) TestRestoreSnapshot() {
	// Arrange
	snap := domain.Snapshot{
		SearchText:       "",
		SelectedCategory: domain.CategoryTopRated,
		CurrentPage:      4,
		HasMorePages:     true,
		Filters:          domain.Filters{GenreIDs: []int{18}},
		UsingFilters:     true,
	}

	// Act
	suite.controller.RestoreSnapshot(snap)

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal(domain.CategoryTopRated, state.SelectedCategory())
	suite.Equal(4, state.CurrentPage())
	suite.True(state.UsingFilters())
}

func (suite *ControllerTestSuite) TestOnApplyAndClearFilters() {
	// Arrange
	suite.source.enqueue(pageOf(1, 1, "filtered"), nil)

	// Act
	suite.controller.OnApplyFilters(suite.ctx, domain.Filters{MinRating: 7})

	// Assert
	state := suite.controller.CurrentState()
	suite.True(state.UsingFilters())
	suite.Equal(1, state.MovieCount())
	suite.InDelta(7.0, suite.source.call(0).Filters.MinRating, 0.001)

	// Act: clearing reloads without filters.
	suite.source.enqueue(pageOf(1, 1, "plain"), nil)
	suite.controller.OnClearFilters(suite.ctx)

	// Assert
	state = suite.controller.CurrentState()
	suite.False(state.UsingFilters())
	suite.False(suite.source.call(1).Filters.Active())
}

func (suite *ControllerTestSuite) TestOnManualRefresh_ReloadsPageOne() {
	// Arrange
	suite.source.enqueue(pageOf(1, 3, "a"), nil)
	suite.controller.Init(suite.ctx)
	suite.source.enqueue(pageOf(2, 3, "b"), nil)
	suite.controller.OnLoadMoreRequested(suite.ctx)
	suite.source.enqueue(pageOf(1, 3, "refreshed"), nil)

	// Act
	suite.controller.OnManualRefresh(suite.ctx)

	// Assert
	state := suite.controller.CurrentState()
	suite.Equal(1, state.CurrentPage())
	suite.Require().Equal(1, state.MovieCount())
	suite.Equal("refreshed", state.Movies()[0].Title)
	suite.Equal(1, suite.source.call(2).Page)
}

func TestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ControllerTestSuite))
}
