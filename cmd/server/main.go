package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/basworks/gstpapers/internal/api"
	"github.com/basworks/gstpapers/internal/ingestion"
	"github.com/basworks/gstpapers/internal/logger"
	"github.com/basworks/gstpapers/internal/repository"
	"github.com/basworks/gstpapers/internal/review"
)

func main() {
	// A .env file is optional; real deployments set the environment.
	_ = godotenv.Load()

	log := logger.New()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Batches are session-scoped: the default in-memory store keeps
	// nothing across restarts. Set DB_PATH to a file to survive them.
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = ":memory:"
	}

	log.Info().Str("db", dbPath).Msg("initializing batch store")
	db, err := repository.InitDB(dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("init db")
	}
	defer db.Close()

	batchRepo := repository.NewBatchRepo(db)

	ingestionSvc := ingestion.NewService(batchRepo, log)
	reviewSvc := review.NewService(batchRepo, log)

	router := api.NewRouter(ingestionSvc, reviewSvc, batchRepo, log)

	log.Info().Str("addr", "http://localhost:"+port).Msg("GST working papers service")
	log.Info().Msg("endpoints:")
	log.Info().Msg("  POST   /api/v1/batches")
	log.Info().Msg("  GET    /api/v1/batches/{id}/ledger")
	log.Info().Msg("  PUT    /api/v1/batches/{id}/revisions")
	log.Info().Msg("  GET    /api/v1/batches/{id}/summary")
	log.Info().Msg("  GET    /api/v1/batches/{id}/export")
	log.Info().Msg("  DELETE /api/v1/batches/{id}")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
