package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var (
	db   *sql.DB
	once sync.Once
)

// Init initializes the database connection
func Init(databaseURL string) error {
	var err error
	once.Do(func() {
		db, err = sql.Open("sqlite3", databaseURL)
		if err != nil {
			log.Printf("Failed to open database: %v", err)
			return
		}

		// Test the connection
		if err = db.Ping(); err != nil {
			log.Printf("Failed to ping database: %v", err)
			return
		}

		log.Printf("Database initialized successfully: %s", databaseURL)
	})
	return err
}

// Get returns the database connection
func Get() *sql.DB {
	if db == nil {
		panic("Database not initialized. Call db.Init() first.")
	}
	return db
}

// SetForTesting sets the database connection for testing
func SetForTesting(database *sql.DB) {
	db = database
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// schema is applied by Migrate. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS Vehicle (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		make TEXT NOT NULL,
		model TEXT NOT NULL,
		year INTEGER NOT NULL,
		price INTEGER NOT NULL,
		mileage INTEGER,
		location TEXT,
		image_urls TEXT NOT NULL DEFAULT '[]',
		fuel_type TEXT,
		transmission TEXT,
		vehicle_type TEXT NOT NULL CHECK (vehicle_type IN ('car', 'bike')),
		seller_phone TEXT,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vehicle_status_created ON Vehicle (status, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS FavoriteVehicle (
		visitor_id TEXT NOT NULL,
		vehicle_id TEXT NOT NULL REFERENCES Vehicle(id) ON DELETE CASCADE,
		favorited_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
		PRIMARY KEY (visitor_id, vehicle_id)
	)`,
	`CREATE TABLE IF NOT EXISTS SearchLog (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		visitor_id TEXT,
		query_string TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`,
}

// Migrate creates any missing tables and indexes
func Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := Get().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error applying schema: %w", err)
		}
	}
	return nil
}

// Convenience methods that wrap common database operations

// Query executes a query that returns rows
func Query(query string, args ...interface{}) (*sql.Rows, error) {
	return Get().Query(query, args...)
}

// QueryContext executes a query that returns rows, honoring ctx
func QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return Get().QueryContext(ctx, query, args...)
}

// QueryRow executes a query that returns a single row
func QueryRow(query string, args ...interface{}) *sql.Row {
	return Get().QueryRow(query, args...)
}

// QueryRowContext executes a query that returns a single row, honoring ctx
func QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return Get().QueryRowContext(ctx, query, args...)
}

// Exec executes a query that doesn't return rows
func Exec(query string, args ...interface{}) (sql.Result, error) {
	return Get().Exec(query, args...)
}

// Begin starts a new transaction
func Begin() (*sql.Tx, error) {
	return Get().Begin()
}
