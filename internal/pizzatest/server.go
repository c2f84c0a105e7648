// Package pizzatest runs an in-process fake of the ordering service for
// tests.
package pizzatest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/idilsaglam/pizza/internal/model"
)

// DefaultCatalog is served until SetCatalog is called.
const DefaultCatalog = `[
	{"id": 1, "name": "Margherita", "toppings": ["cheese"], "url": "x"},
	{"id": 2, "name": "Funghi", "toppings": ["cheese", "mushroom"], "url": "y"}
]`

// Received is one request seen by POST /api/order.
type Received struct {
	Header http.Header
	Body   []byte
	Order  model.Order
}

// Server is a fake ordering service.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	catalog       string
	catalogStatus int
	orderStatus   int
	catalogHits   int
	catalogHeader http.Header
	orders        []Received
}

// New starts a fake service; it is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		catalog:       DefaultCatalog,
		catalogStatus: http.StatusOK,
		orderStatus:   http.StatusCreated,
	}

	r := chi.NewRouter()
	r.Get("/api/pizza", s.handleCatalog)
	r.Post("/api/order", s.handleOrder)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetCatalog replaces the raw catalog body.
func (s *Server) SetCatalog(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = raw
}

// FailCatalog makes GET /api/pizza answer with status.
func (s *Server) FailCatalog(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogStatus = status
}

// FailOrders makes POST /api/order answer with status.
func (s *Server) FailOrders(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderStatus = status
}

// CatalogHits reports how many catalog requests were served.
func (s *Server) CatalogHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogHits
}

// CatalogHeader returns the headers of the last catalog request.
func (s *Server) CatalogHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogHeader
}

// Orders returns every order request received so far.
func (s *Server) Orders() []Received {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Received(nil), s.orders...)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.catalogHits++
	s.catalogHeader = r.Header.Clone()
	status, body := s.catalogStatus, s.catalog
	s.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, "catalog unavailable", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rec := Received{Header: r.Header.Clone(), Body: body}
	// Undecodable bodies are still recorded so tests can inspect them.
	_ = json.Unmarshal(body, &rec.Order)

	s.mu.Lock()
	s.orders = append(s.orders, rec)
	status := s.orderStatus
	s.mu.Unlock()

	if status >= 400 {
		http.Error(w, "order rejected", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"status":"received"}`)
}
