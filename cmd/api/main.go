package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"dante_properties/internal/adapters/gemini"
	server "dante_properties/internal/adapters/http_server"
	"dante_properties/internal/adapters/observability"
	redisad "dante_properties/internal/adapters/redis"
	"dante_properties/internal/app"
	"dante_properties/internal/chat"
	"dante_properties/internal/shared"
	mysqlrepo "dante_properties/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	search := app.NewSearchService(repo, cache, cfg.CacheTTL)
	contacts := app.NewContactService(repo)
	stats := observability.NewCollector()

	llm, err := gemini.New(context.Background(), cfg.GeminiKeys, cfg.Model, cfg.LLMTimeout, cfg.LLMRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize gemini gateway")
	}
	orch := chat.NewOrchestrator(search, repo, llm, stats)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Chat:     orch,
		Search:   search,
		Contacts: contacts,
		Stats:    stats,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Int("gemini_keys", len(cfg.GeminiKeys)).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
