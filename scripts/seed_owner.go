package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-builder/pkg/auth"
	"github.com/khoahotran/portfolio-builder/pkg/logger"
)

// Creates or updates the owner account that logs in to run ingestions.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	appLogger := logger.NewZapLogger(os.Getenv("APP_ENV"))
	defer appLogger.Sync()

	dsn := os.Getenv("DB_DSN")
	email := strings.ToLower(strings.TrimSpace(os.Getenv("OWNER_EMAIL")))
	password := os.Getenv("OWNER_PASSWORD")
	if dsn == "" || email == "" || password == "" {
		log.Fatal("DB_DSN, OWNER_EMAIL and OWNER_PASSWORD are required")
	}

	var name *string
	if n := strings.TrimSpace(os.Getenv("OWNER_NAME")); n != "" {
		name = &n
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		appLogger.Fatal("Cannot hash password", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		appLogger.Fatal("Cannot connect DB", err)
	}
	defer pool.Close()

	query := `
		INSERT INTO users (id, email, name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE
		SET password_hash = EXCLUDED.password_hash,
		    name = COALESCE(EXCLUDED.name, users.name)
		RETURNING id
	`
	var id uuid.UUID
	if err := pool.QueryRow(ctx, query, uuid.New(), email, name, hash).Scan(&id); err != nil {
		appLogger.Fatal("Cannot add owner", err)
	}

	appLogger.Info("Owner added or updated", zap.String("email", email), zap.String("owner_id", id.String()))
}
