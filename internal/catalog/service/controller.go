package service

import (
	"context"
	"sync"
	"time"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/pkg/interfaces"
)

// DefaultSearchDebounce is the settle window after the last keystroke
// before a search fetch is issued.
const DefaultSearchDebounce = 500 * time.Millisecond

// Controller orchestrates catalog fetches for one screen session.
//
// It is the single place that decides when to call the data source and
// how to merge results into state. At most one fetch is in flight at a
// time; a state change that arrives while a fetch is in flight is
// recorded and a fresh fetch is issued once the in-flight one
// completes. Every fetch carries a monotonic sequence number and a
// completed fetch whose sequence is no longer the latest is discarded,
// so a superseded result can never corrupt state ordering.
type Controller struct {
	source CatalogSource
	bus    interfaces.EventBus
	logger interfaces.Logger

	debounceDelay time.Duration

	mu            sync.Mutex
	state         domain.State
	inFlight      bool
	seq           uint64
	pendingReload bool
	debounce      *time.Timer
}

// NewController creates a controller over the given catalog source.
func NewController(
	source CatalogSource,
	bus interfaces.EventBus,
	logger interfaces.Logger,
	debounceDelay time.Duration,
) *Controller {
	if debounceDelay <= 0 {
		debounceDelay = DefaultSearchDebounce
	}
	return &Controller{
		source:        source,
		bus:           bus,
		logger:        logger,
		debounceDelay: debounceDelay,
		state:         domain.NewState(),
	}
}

// CurrentState returns a read-only snapshot of the session state.
func (c *Controller) CurrentState() domain.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RestoreSnapshot rebuilds the session state from a persisted
// snapshot. Call before Init.
func (c *Controller) RestoreSnapshot(snap domain.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = domain.RestoreState(snap)
}

// Init triggers the initial load of page one.
func (c *Controller) Init(ctx context.Context) {
	c.applyAndReload(ctx, func(s domain.State) domain.State {
		return s.ResetPagination()
	})
}

// OnCategoryChange selects a browse category and reloads from page one.
func (c *Controller) OnCategoryChange(ctx context.Context, category domain.Category) {
	c.applyAndReload(ctx, func(s domain.State) domain.State {
		return s.SetCategory(category)
	})
}

// OnApplyFilters applies a filter set and reloads from page one.
func (c *Controller) OnApplyFilters(ctx context.Context, filters domain.Filters) {
	c.applyAndReload(ctx, func(s domain.State) domain.State {
		return s.SetFilters(filters)
	})
}

// OnClearFilters clears all filters and reloads from page one.
func (c *Controller) OnClearFilters(ctx context.Context) {
	c.applyAndReload(ctx, func(s domain.State) domain.State {
		return s.ClearFilters()
	})
}

// OnManualRefresh reloads the current configuration from page one.
func (c *Controller) OnManualRefresh(ctx context.Context) {
	c.applyAndReload(ctx, func(s domain.State) domain.State {
		return s.ResetPagination()
	})
}

// OnSearchTextChange records a keystroke. Pagination resets
// immediately; the fetch waits for the debounce window to settle so a
// burst of keystrokes issues a single request.
func (c *Controller) OnSearchTextChange(ctx context.Context, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = c.state.SetSearchText(text)
	c.seq++ // any in-flight result no longer matches the query

	if c.debounce != nil {
		c.debounce.Stop()
	}
	c.debounce = time.AfterFunc(c.debounceDelay, func() {
		c.reload(ctx)
	})
}

// OnLoadMoreRequested fetches the next page when the list end is
// reached. The request is dropped when no further pages exist or a
// fetch is already in flight.
func (c *Controller) OnLoadMoreRequested(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight || !c.state.HasMorePages() {
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.seq++
	seq := c.seq
	c.state = c.state.SetLoading(true)
	query := c.queryLocked(c.state.CurrentPage() + 1)
	c.mu.Unlock()

	c.fetch(ctx, seq, query, true)
}

// Close stops the pending debounce timer, if any.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

// applyAndReload applies a state transition and issues a page-one
// fetch. When a fetch is already in flight the transition still takes
// effect: the in-flight sequence is invalidated and the reload is
// re-evaluated once it completes.
func (c *Controller) applyAndReload(ctx context.Context, transition func(domain.State) domain.State) {
	c.mu.Lock()
	c.state = transition(c.state)
	c.seq++

	if c.inFlight {
		c.pendingReload = true
		c.mu.Unlock()
		return
	}

	c.inFlight = true
	seq := c.seq
	c.state = c.state.SetLoading(true)
	query := c.queryLocked(1)
	c.mu.Unlock()

	c.fetch(ctx, seq, query, false)
}

// reload issues a page-one fetch for the current configuration, or
// defers it when a fetch is in flight.
func (c *Controller) reload(ctx context.Context) {
	c.mu.Lock()
	if c.inFlight {
		c.pendingReload = true
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	seq := c.seq
	c.state = c.state.SetLoading(true)
	query := c.queryLocked(1)
	c.mu.Unlock()

	c.fetch(ctx, seq, query, false)
}

// queryLocked builds the fetch query for the given page; the caller
// holds the lock.
func (c *Controller) queryLocked(page int) Query {
	return Query{
		SearchText: c.state.SearchText(),
		Category:   c.state.SelectedCategory(),
		Filters:    c.state.Filters(),
		Page:       page,
	}
}

// fetch performs one fetch and merges the result. It then re-issues a
// fresh fetch when a state change arrived in the meantime.
func (c *Controller) fetch(ctx context.Context, seq uint64, query Query, appendResults bool) {
	page, err := c.source.FetchCatalog(ctx, query)

	c.mu.Lock()
	c.inFlight = false

	switch {
	case err != nil:
		// Loading flags are cleared and the previously loaded list is
		// preserved; the failure is surfaced on the event bus.
		c.state = c.state.SetLoading(false)
		c.logger.Error("Catalog fetch failed",
			interfaces.Int("page", query.Page),
			interfaces.Error(err))
		c.bus.PublishAsync(ctx, domain.NewCatalogFetchFailedEvent(err))

	case seq != c.seq:
		// Superseded while in flight; the re-issued fetch below will
		// load the newest configuration.
		c.state = c.state.SetLoading(false)
		c.logger.Debug("Discarding superseded fetch result",
			interfaces.Int("page", query.Page))

	case appendResults:
		c.state = c.state.NextPage().
			AddMovies(page.Movies).
			SetHasMore(page.HasMore).
			SetLoading(false)
		c.bus.PublishAsync(ctx, domain.NewCatalogRefreshedEvent(page.CurrentPage, true, len(page.Movies)))

	default:
		c.state = c.state.SetMovies(page.Movies).
			SetHasMore(page.HasMore).
			SetLoading(false)
		c.bus.PublishAsync(ctx, domain.NewCatalogRefreshedEvent(page.CurrentPage, false, len(page.Movies)))
	}

	rerun := c.pendingReload
	c.pendingReload = false
	var (
		nextSeq   uint64
		nextQuery Query
	)
	if rerun {
		c.inFlight = true
		nextSeq = c.seq
		c.state = c.state.SetLoading(true)
		nextQuery = c.queryLocked(1)
	}
	c.mu.Unlock()

	if rerun {
		c.fetch(ctx, nextSeq, nextQuery, false)
	}
}
