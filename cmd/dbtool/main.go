package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"pharmacy-stock-service/internal/adapters/cache"
	"pharmacy-stock-service/internal/catalog"
	"pharmacy-stock-service/internal/platform/db"
)

// dbtool prepares a Postgres instance for the service: it creates the
// geocode cache schema and seeds the cities reference table from the
// embedded catalog.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pdb, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pdb.Close()

	log.Println("Initializing database schema...")
	if err := cache.InitPostgresSchema(pdb); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding cities...")
	n, err := seedCities(pdb)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. cities=%d", n)
}

func seedCities(pdb *sql.DB) (int, error) {
	q := `
	CREATE TABLE IF NOT EXISTS cities (
        name TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`
	if _, err := pdb.Exec(q); err != nil {
		return 0, fmt.Errorf("seed cities: create table: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		return 0, fmt.Errorf("seed cities: %w", err)
	}

	tx, err := pdb.Begin()
	if err != nil {
		return 0, fmt.Errorf("seed cities: begin: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
	INSERT INTO cities (name, lat, lon) VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE SET lat = EXCLUDED.lat, lon = EXCLUDED.lon`

	for _, e := range cat.Entries() {
		if _, err := tx.Exec(upsert, e.Name, e.Lat, e.Lon); err != nil {
			return 0, fmt.Errorf("seed cities: upsert %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed cities: commit: %w", err)
	}

	return cat.Len(), nil
}
