package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"dante_properties/internal/adapters/observability"
	"dante_properties/internal/app"
	"dante_properties/internal/shared"
	mysqlrepo "dante_properties/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("feed", cfg.FeedPath).
		Int("workers", cfg.Workers).
		Msg("loader starting")

	raw, err := os.ReadFile(cfg.FeedPath)
	if err != nil {
		log.Fatal().Err(err).Str("feed", cfg.FeedPath).Msg("read feed failed")
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatal().Err(err).Msg("feed is not a JSON array of objects")
	}
	log.Info().Int("records", len(records)).Msg("feed parsed")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	loader := app.NewCatalogLoader(mysqlrepo.New(db))
	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var stored, skipped, failed atomic.Int64

	for _, rec := range records {
		rec := rec

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(entry map[string]any) {
			defer wg.Done()
			defer sem.Release(int64(1))

			ok, err := loader.LoadRecord(ctx, entry)
			switch {
			case err != nil:
				failed.Add(1)
				log.Warn().Err(err).Msg("load failed")
			case !ok:
				skipped.Add(1)
			default:
				stored.Add(1)
			}
		}(rec)
	}

	wg.Wait()
	log.Info().
		Int64("stored", stored.Load()).
		Int64("skipped", skipped.Load()).
		Int64("failed", failed.Load()).
		Msg("load completed")
}
