package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"pharmacy-stock-service/internal/adapters/cache"
	"pharmacy-stock-service/internal/adapters/geocode"
	"pharmacy-stock-service/internal/adapters/stock"
	"pharmacy-stock-service/internal/api"
	"pharmacy-stock-service/internal/catalog"
	"pharmacy-stock-service/internal/config"
	"pharmacy-stock-service/internal/platform/db"
	"pharmacy-stock-service/internal/ports"
	"pharmacy-stock-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Redis/Postgres cache, Nominatim-style
// geocoder, HTTP stock provider) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	stockBaseURL := os.Getenv("STOCK_API_URL")
	if strings.TrimSpace(stockBaseURL) == "" {
		log.Fatal("STOCK_API_URL is required")
	}
	stockAPIKey := os.Getenv("STOCK_API_KEY")
	stockSessions := config.GetInt("STOCK_SESSIONS", 1)

	geocodeURL := config.Get("GEOCODE_API_URL", "https://nominatim.openstreetmap.org")
	userAgent := config.Get("GEOCODE_USER_AGENT", "pharmacy-stock-service/1.0")

	geocodeStore, cleanup, err := openGeocodeStore()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	backend, err := geocode.NewClient(geocodeURL, userAgent)
	if err != nil {
		log.Fatal(err)
	}

	gwCfg := geocode.DefaultConfig()
	gwCfg.CallDelay = config.GetDuration("GEOCODE_CALL_DELAY", gwCfg.CallDelay)
	gwCfg.VariantDelay = config.GetDuration("GEOCODE_VARIANT_DELAY", gwCfg.VariantDelay)
	gwCfg.Country = config.Get("CATALOG_COUNTRY", gwCfg.Country)
	geocoder := geocode.NewGateway(backend, geocodeStore, gwCfg)

	sessions := make([]ports.StockProvider, 0, stockSessions)
	for i := 0; i < stockSessions; i++ {
		provider, err := stock.NewHTTPProvider(stockBaseURL, stockAPIKey)
		if err != nil {
			log.Fatal(err)
		}
		sessions = append(sessions, provider)
	}
	pool, err := stock.NewPool(sessions...)
	if err != nil {
		log.Fatal(err)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Catalog loaded cities=%d", cat.Len())

	svc := &services.SearchService{
		Catalog:  cat,
		Geocoder: geocoder,
		Sessions: pool,
		Country:  gwCfg.Country,
	}
	router := api.NewRouter(cat, svc)

	// Write timeout covers worst-case cold-cache searches: every city and
	// medication paced at over a second per geocoder round trip.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openGeocodeStore picks the persistent geocode cache backend from
// CACHE_BACKEND: sqlite (default), redis, postgres, or none.
func openGeocodeStore() (ports.GeocodeCache, func(), error) {
	switch backend := config.Get("CACHE_BACKEND", "sqlite"); backend {
	case "sqlite":
		sdb, err := openSqlite(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitSqliteSchema(sdb); err != nil {
			sdb.Close()
			return nil, nil, err
		}
		return cache.NewSqliteGeocodeCache(sdb), func() { sdb.Close() }, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})
		return cache.NewRedisGeocodeCache(client), func() { client.Close() }, nil

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for CACHE_BACKEND=postgres")
		}
		pdb, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := cache.InitPostgresSchema(pdb); err != nil {
			pdb.Close()
			return nil, nil, err
		}
		return cache.NewSQLGeocodeCache(pdb), func() { pdb.Close() }, nil

	case "none":
		return nil, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown CACHE_BACKEND %q", backend)
	}
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sdb, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %q: %w", dbPath, err)
	}

	if err := sdb.Ping(); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("verify sqlite connection to %q: %w", dbPath, err)
	}

	return sdb, nil
}
