// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Aruba-Creative/nokan-api/internal/config"
	"github.com/Aruba-Creative/nokan-api/internal/logger"
	"github.com/Aruba-Creative/nokan-api/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	maxOpenConns     = 10
	maxIdleConns     = 4
	connMaxLifetime  = 30 * time.Minute
	pingAttempts     = 3
	pingRetryBackoff = time.Second
)

// DB wraps the *sql.DB connection pool together with the error classifier
// used to decide whether a startup failure is transient.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a pgx-backed connection pool for cfg.DSN and
// pings it. Retryable failures (connection exceptions, "cannot connect now")
// are retried a few times before giving up.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	db := &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}

	if err = db.ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return db, nil
}

func (db *DB) ping(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		err = db.PingContext(ctx)
		if err == nil {
			return nil
		}

		retryable := db.errorClassificator.Classify(err) == Retryable
		db.logger.Err(err).
			Str("func", "DB.ping").
			Int("attempt", attempt).
			Bool("retryable", retryable).
			Msg("error connecting database (ping)")
		if !retryable || attempt == pingAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingRetryBackoff * time.Duration(attempt)):
		}
	}

	return fmt.Errorf("error connecting database: %w", err)
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

// postgresError returns the SQLSTATE code of err, or "" when err does not
// originate from PostgreSQL.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// rollback aborts tx, ignoring the error returned after a successful commit.
func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
