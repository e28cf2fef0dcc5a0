package stock

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pharmacy-stock-service/internal/ports"
)

func TestHTTPProviderQueryStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("city"); got != "Gdynia" {
			t.Errorf("city = %q", got)
		}
		if got := r.URL.Query().Get("medication"); got != "Euthyrox N 50" {
			t.Errorf("medication = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches": [
			{"name": "Apteka Morska", "address": "ul. Świętojańska 5, Gdynia", "phone": "58 620 00 00", "code": "APT-101"},
			{"name": "  ", "address": "ul. Pusta 1, Gdynia"}
		]}`))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPProvider: %v", err)
	}

	got, err := p.QueryStock(context.Background(), "Gdynia", "Euthyrox N 50")
	if err != nil {
		t.Fatalf("QueryStock: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("matches = %d, want 1 (blank-name row dropped)", len(got))
	}
	if got[0].Name != "Apteka Morska" || got[0].ExternalCode != "APT-101" {
		t.Fatalf("match = %+v", got[0])
	}
}

func TestHTTPProviderNoStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"matches": []}`))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPProvider: %v", err)
	}

	_, err = p.QueryStock(context.Background(), "Radom", "Metformax 850")
	var se *ports.StockError
	if !errors.As(err, &se) || se.Kind != ports.StockNoStock {
		t.Fatalf("err = %v, want StockError kind no_stock", err)
	}
}

func TestHTTPProviderNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown city", http.StatusNotFound)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "")
	if err != nil {
		t.Fatalf("NewHTTPProvider: %v", err)
	}

	_, err = p.QueryStock(context.Background(), "Atlantyda", "Apap")
	var se *ports.StockError
	if !errors.As(err, &se) || se.Kind != ports.StockNotFound {
		t.Fatalf("err = %v, want StockError kind not_found", err)
	}
}

func TestHTTPProviderValidatesInput(t *testing.T) {
	p, err := NewHTTPProvider("http://localhost:1", "")
	if err != nil {
		t.Fatalf("NewHTTPProvider: %v", err)
	}

	if _, err := p.QueryStock(context.Background(), " ", "Apap"); err == nil {
		t.Fatal("expected error for blank city")
	}
	if _, err := p.QueryStock(context.Background(), "Radom", ""); err == nil {
		t.Fatal("expected error for blank medication")
	}
}
