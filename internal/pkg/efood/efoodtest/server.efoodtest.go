// Package efoodtest serves a fake efood API for tests.
package efoodtest

import (
	"efood-checkout/internal/pkg/efood"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

const OrderID = "ORD-TEST-1"

// Server is an in-memory efood API. Dish lookups by path answer 404 unless
// ServeDishPath is set, so clients exercise the menu fallback.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	restaurants   []efood.Restaurant
	calls         map[string]int
	purchases     []efood.PurchaseRequest
	failPurchase  bool
	ServeDishPath bool
}

func Restaurants() []efood.Restaurant {
	return []efood.Restaurant{
		{
			ID:          1,
			Title:       "Hioki Sushi",
			Highlighted: true,
			Kind:        "Japonesa",
			Rating:      4.9,
			Description: "Peça já o melhor da culinária japonesa no conforto da sua casa!",
			Cover:       "https://example.test/hioki.png",
			Menu: []efood.Dish{
				{ID: 1, Name: "Sushi combo", Description: "20 peças", Photo: "https://example.test/1.png", Portion: "2 pessoas", Price: decimal.RequireFromString("60.9")},
				{ID: 2, Name: "Temaki", Description: "Salmão", Photo: "https://example.test/2.png", Portion: "1 pessoa", Price: decimal.RequireFromString("32.5")},
			},
		},
		{
			ID:     2,
			Title:  "La Dolce Vita Trattoria",
			Kind:   "Italiana",
			Rating: 4.6,
			Menu: []efood.Dish{
				{ID: 10, Name: "Pizza Marguerita", Portion: "2 a 3 pessoas", Price: decimal.RequireFromString("56.9")},
			},
		},
	}
}

func NewServer(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		restaurants: Restaurants(),
		calls:       map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// FailPurchases makes every purchase answer 500.
func (s *Server) FailPurchases(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPurchase = fail
}

// Calls returns how often a path (without the leading slash) was hit.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *Server) Purchases() []efood.PurchaseRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]efood.PurchaseRequest(nil), s.purchases...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := strings.Trim(r.URL.Path, "/")
	s.calls[path]++
	parts := strings.Split(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "restaurantes":
		writeJSON(w, http.StatusOK, s.restaurants)
	case r.Method == http.MethodGet && len(parts) == 2 && parts[0] == "restaurantes":
		if rest := s.restaurant(parts[1]); rest != nil {
			writeJSON(w, http.StatusOK, rest)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodGet && len(parts) == 4 && parts[0] == "restaurantes" && parts[2] == "cardapio":
		rest := s.restaurant(parts[1])
		if !s.ServeDishPath || rest == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		id, _ := strconv.Atoi(parts[3])
		for _, d := range rest.Menu {
			if d.ID == id {
				writeJSON(w, http.StatusOK, d)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	case r.Method == http.MethodPost && path == "checkout":
		var req efood.PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.purchases = append(s.purchases, req)
		if s.failPurchase {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
			return
		}
		writeJSON(w, http.StatusCreated, efood.PurchaseResponse{OrderID: OrderID})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) restaurant(rawID string) *efood.Restaurant {
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil
	}
	for i := range s.restaurants {
		if s.restaurants[i].ID == id {
			return &s.restaurants[i]
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
