package storage

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"descuentosgo/dealworker/internal/extract"
	"descuentosgo/dealworker/logger"
)

// PostgresWriter persists validated products to PostgreSQL, keeping the
// latest prices per product across scans.
type PostgresWriter struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db, log: logger.ForStorage()}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}
	pw.log.Debug().Msg("Schema migrations applied")

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id                  SERIAL PRIMARY KEY,
			hash_id             VARCHAR(32)   UNIQUE NOT NULL,
			store               VARCHAR(50)   NOT NULL,
			name                TEXT          NOT NULL,
			current_price       NUMERIC(12,2) NOT NULL,
			original_price      NUMERIC(12,2) NOT NULL DEFAULT 0,
			discount_percentage NUMERIC(5,2)  NOT NULL DEFAULT 0,
			reliability         NUMERIC(3,2)  NOT NULL DEFAULT 1.0,
			savings             NUMERIC(12,2) NOT NULL DEFAULT 0,
			link                TEXT          NOT NULL DEFAULT '',
			image               TEXT          NOT NULL DEFAULT '',
			category            TEXT          NOT NULL DEFAULT '',
			tags                TEXT          NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			updated_at          TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS price_history (
			id         SERIAL PRIMARY KEY,
			hash_id    VARCHAR(32)   NOT NULL,
			price      NUMERIC(12,2) NOT NULL,
			recorded_at TIMESTAMPTZ  NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_store    ON products(store);
		CREATE INDEX IF NOT EXISTS idx_products_discount ON products(discount_percentage);
		CREATE INDEX IF NOT EXISTS idx_history_hash      ON price_history(hash_id);
	`)
	return err
}

// Write upserts the batch on the product hash and records every current
// price in the history table.
func (pw *PostgresWriter) Write(products []extract.Product) error {
	if len(products) == 0 {
		return nil
	}

	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	upsert, err := tx.Prepare(`
		INSERT INTO products
			(hash_id, store, name, current_price, original_price, discount_percentage,
			 reliability, savings, link, image, category, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (hash_id) DO UPDATE SET
			current_price       = EXCLUDED.current_price,
			original_price      = EXCLUDED.original_price,
			discount_percentage = EXCLUDED.discount_percentage,
			reliability         = EXCLUDED.reliability,
			savings             = EXCLUDED.savings,
			updated_at          = NOW()
	`)
	if err != nil {
		return fmt.Errorf("postgres: prepare upsert: %w", err)
	}
	defer upsert.Close()

	history, err := tx.Prepare(`INSERT INTO price_history (hash_id, price) VALUES ($1, $2)`)
	if err != nil {
		return fmt.Errorf("postgres: prepare history: %w", err)
	}
	defer history.Close()

	for _, p := range products {
		hash := ProductHash(p.Store, p.Name)
		if _, err := upsert.Exec(
			hash, p.Store, p.Name, p.CurrentPrice, p.OriginalPrice, p.DiscountPercentage,
			p.Reliability, p.Savings, p.Link, p.Image, p.Category, strings.Join(p.Tags, ";"),
		); err != nil {
			return fmt.Errorf("postgres: upsert %s: %w", p.Name, err)
		}
		if _, err := history.Exec(hash, p.CurrentPrice); err != nil {
			return fmt.Errorf("postgres: history %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// ProductHash is the stable identity of a product in storage.
func ProductHash(store, name string) string {
	text := strings.ToLower(strings.TrimSpace(name)) + "_" + strings.ToLower(store)
	sum := md5.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
