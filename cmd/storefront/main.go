package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/GabrielePre11/storefront/internal/browse"
	"github.com/GabrielePre11/storefront/internal/cart"
	"github.com/GabrielePre11/storefront/internal/catalog"
	"github.com/GabrielePre11/storefront/internal/config"
	"github.com/GabrielePre11/storefront/internal/favorites"
	"github.com/GabrielePre11/storefront/internal/persist"
	"github.com/GabrielePre11/storefront/internal/storage"

	h "github.com/GabrielePre11/storefront/internal/http"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	snapshots, err := openSnapshotStore(cfg)
	if err != nil {
		log.Fatalf("failed to open snapshot store: %v", err)
	}
	defer snapshots.Close()

	cartStore := cart.New()
	favoritesStore := favorites.New()

	restoreCtx, cancelRestore := context.WithTimeout(context.Background(), 5*time.Second)
	if err := persist.Restore(restoreCtx, snapshots, cartStore, favoritesStore); err != nil {
		log.Printf("failed to restore snapshots, starting empty: %v", err)
	}
	cancelRestore()

	persister := persist.New(snapshots)
	defer persister.Close()
	unwatch := persister.Watch(cartStore, favoritesStore)
	defer unwatch()

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.RequestTimeout.Std())
	feed := browse.NewFeed(catalogClient, cfg.PageSize)

	r := h.NewRouter(
		h.NewProductHandler(catalogClient, feed, cfg.RequestTimeout.Std()),
		h.NewCartHandler(cartStore),
		h.NewFavoritesHandler(favoritesStore),
		cfg.RequestTimeout.Std(),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s (catalog %s, storage %s)",
			cfg.HTTPPort, cfg.CatalogBaseURL, cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}

func openSnapshotStore(cfg *config.Config) (storage.SnapshotStore, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(cfg.Storage.MigrationsPath); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.Storage.RedisAddr})
		return storage.NewRedisStore(client), nil

	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return storage.NewMongoStore(ctx, cfg.Storage.MongoURI, cfg.Storage.MongoDatabase)

	default:
		return nil, errors.New("unknown storage backend " + cfg.Storage.Backend)
	}
}
