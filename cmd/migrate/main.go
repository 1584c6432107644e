package main

import (
	"context"
	"log"

	"dejargonizer/pkg/config"
	"dejargonizer/pkg/logger"
	"dejargonizer/pkg/postgres"

	"go.uber.org/zap"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS "pgcrypto";

CREATE TABLE IF NOT EXISTS users (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    email      TEXT NOT NULL UNIQUE,
    password   TEXT NOT NULL,
    name       TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS documents (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    title       TEXT NOT NULL,
    type        TEXT NOT NULL DEFAULT 'general',
    text        TEXT NOT NULL,
    source      TEXT NOT NULL,
    filename    TEXT NOT NULL,
    uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    analyzed    BOOLEAN NOT NULL DEFAULT FALSE,
    analyzed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_documents_user_uploaded
    ON documents (user_id, uploaded_at DESC);

CREATE TABLE IF NOT EXISTS analyses (
    document_id        UUID PRIMARY KEY REFERENCES documents(id) ON DELETE CASCADE,
    title              TEXT NOT NULL,
    analyzed_at        TIMESTAMPTZ NOT NULL,
    plain_summary      TEXT NOT NULL,
    key_terms          JSONB NOT NULL DEFAULT '[]',
    important_clauses  JSONB NOT NULL DEFAULT '[]',
    risks_and_concerns JSONB NOT NULL DEFAULT '[]',
    unclear_items      JSONB NOT NULL DEFAULT '[]'
);
`

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Applying database schema...")

	if _, err := db.Exec(ctx, schema); err != nil {
		appLogger.Fatal("Failed to apply schema", zap.Error(err))
	}

	appLogger.Info("Database schema applied successfully!")
}
