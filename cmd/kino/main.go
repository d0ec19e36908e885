package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kinomedia/kino/internal/catalog/domain"
	"github.com/kinomedia/kino/internal/catalog/repository"
	"github.com/kinomedia/kino/internal/catalog/service"
	"github.com/kinomedia/kino/internal/provider/tmdb"
	"github.com/kinomedia/kino/internal/settings"
	userservice "github.com/kinomedia/kino/internal/user/service"
	"github.com/kinomedia/kino/pkg/cache"
	"github.com/kinomedia/kino/pkg/config"
	"github.com/kinomedia/kino/pkg/events"
	"github.com/kinomedia/kino/pkg/interfaces"
	"github.com/kinomedia/kino/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log := logger.New()

	log.Info("Kino catalog starting",
		interfaces.String("environment", cfg.Service.Environment),
		interfaces.String("region", cfg.Provider.Region))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := settings.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to open settings storage", interfaces.Error(err))
	}
	prefs := settings.NewPreferences(store)

	eventBus := events.NewInMemoryEventBus(log)
	defer eventBus.Stop()

	localStore := repository.NewMemoryStore(eventBus, log)
	localStore.Seed(domain.Movie{
		ID:           domain.ParseRecordID("m1"),
		Title:        "Exemplo: O Filme",
		Synopsis:     "Uma sinopse de exemplo.",
		Genres:       []string{"Ficção"},
		CategoryTags: []string{"Destaque"},
		Staff:        "Director: Fulano",
		WhereToWatch: "Serviço X",
		ReleaseDate:  "2020-01-01",
		PosterURL:    "assets/images/capa_filme.jpg",
	})

	provider := tmdb.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.Language,
		cfg.Provider.Region,
		cfg.Provider.Timeout,
	)

	dataSource := service.NewDataSource(
		ctx,
		provider,
		localStore,
		cache.NewInMemoryCache(),
		log,
		cfg.Provider.Region,
		cfg.Provider.ImageBaseURL,
		cfg.Catalog.DetailCacheTTL,
	)

	controller := service.NewController(dataSource, eventBus, log, cfg.Catalog.SearchDebounce)
	defer controller.Close()

	if snap, err := prefs.LoadCatalogState(ctx); err == nil {
		controller.RestoreSnapshot(snap)
		log.Info("Restored catalog state",
			interfaces.String("category", string(snap.SelectedCategory)))
	}

	auth := userservice.NewAuthService(store, log)
	if user, ok := auth.CurrentUser(ctx); ok {
		log.Info("Session resumed", interfaces.String("user", user.Email))
	}
	log.Info("Theme preference", interfaces.String("theme", prefs.Theme(ctx)))

	controller.Init(ctx)

	state := controller.CurrentState()
	fmt.Printf("category=%s page=%d hasMore=%v movies=%d\n",
		state.SelectedCategory(), state.CurrentPage(), state.HasMorePages(), state.MovieCount())
	for _, movie := range state.Movies() {
		fmt.Printf("  %s (%s) %s\n", movie.Title, movie.ReleaseYear(), movie.FormattedRating())
	}

	if err := prefs.SaveCatalogState(ctx, state.Snapshot()); err != nil {
		log.Warn("Failed to persist catalog state", interfaces.Error(err))
	}

	// Give async event handlers a moment before shutdown.
	time.Sleep(50 * time.Millisecond)
	log.Info("Kino catalog exiting")
}
