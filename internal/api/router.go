package api

import (
	"net/http"

	"pharmacy-stock-service/internal/api/handlers"
	"pharmacy-stock-service/internal/catalog"
	"pharmacy-stock-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(cat *catalog.Catalog, svc *services.SearchService) http.Handler {
	mux := http.NewServeMux()

	citiesHandler := &handlers.CitiesHandler{Catalog: cat}
	searchHandler := &handlers.SearchHandler{Service: svc}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/cities", citiesHandler.List)
	mux.HandleFunc("/search", searchHandler.Search)

	return loggingMiddleware(mux)
}
