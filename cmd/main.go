package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cicconee/marine-forecast/internal/config"
	"github.com/cicconee/marine-forecast/internal/forecast"
	"github.com/cicconee/marine-forecast/internal/server"
	"github.com/cicconee/marine-forecast/internal/web"
	"github.com/cicconee/marine-forecast/internal/zone"
	"github.com/go-chi/chi/v5"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalln(err)
	}
}

// run starts the server configured by args and returns when it stops.
func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	zones := zone.Default()
	if cfg.ZonesFile != "" {
		zones, err = zone.LoadFile(cfg.ZonesFile)
		if err != nil {
			return err
		}
	}

	pages, err := web.New()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	source := forecast.NewRateLimitedSource(forecast.NewSimulatedSource(), cfg.SourceRPS, cfg.SourceBurst)
	generator := forecast.NewGenerator(zones, source)

	srv := server.Server{
		Router:    chi.NewRouter(),
		Addr:      cfg.Port,
		Logger:    log.Default(),
		Forecasts: forecast.New(generator, store, log.Default()),
		Pages:     pages,
		Refresh:   cfg.Refresh,
	}
	log.Printf("serving %d zones from %s store", zones.Len(), cfg.Store)

	return srv.Start()
}

// openStore returns the Store selected by cfg and a func releasing it.
func openStore(cfg config.Config) (forecast.Store, func(), error) {
	switch cfg.Store {
	case config.StoreSQLite, config.StorePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		store, err := forecast.OpenSQLStore(ctx, forecast.Dialect(cfg.Store), cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s store: %w", cfg.Store, err)
		}

		return store, func() { store.Close() }, nil
	default:
		return forecast.NewFileStore(cfg.DataFile), func() {}, nil
	}
}
