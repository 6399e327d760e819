// mockapi is a stand-in for the hosted record service: it serves the sample
// collections from memory over the same path conventions the dashboard's
// remote fetch fallback expects.
package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/example/wathera-admin/internal/domain"
	"github.com/example/wathera-admin/internal/logger"
)

type recordService struct {
	mu       sync.Mutex
	products []domain.Product
	orders   []domain.Order
}

func main() {
	if err := logger.Init("development", ""); err != nil {
		panic(err)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8090"
	}

	svc := &recordService{
		products: domain.SampleProducts(),
		orders:   domain.SampleOrders(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/products", svc.listProducts)
	mux.HandleFunc("/products/create", svc.createProduct)
	mux.HandleFunc("/products/delete/", svc.deleteProduct)
	mux.HandleFunc("/orders", svc.listOrders)
	mux.HandleFunc("/orders/create", svc.createOrder)
	mux.HandleFunc("/orders/delete/", svc.deleteOrder)

	zap.S().Infof("mock record service listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		zap.S().Fatalf("server error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *recordService) listProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.products)
}

func (s *recordService) createProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if p.ID == "" {
		p.ID = domain.NewRecordID()
	}
	s.mu.Lock()
	s.products = append(s.products, p)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, p)
}

func (s *recordService) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/products/delete/")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"id": id})
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *recordService) listOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.orders)
}

func (s *recordService) createOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var o domain.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if o.ID == "" {
		o.ID = domain.NewRecordID()
	}
	o.TotalAmount = domain.ComputeOrderTotal(o.Items)
	s.mu.Lock()
	s.orders = append(s.orders, o)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, o)
}

func (s *recordService) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/orders/delete/")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.orders {
		if o.ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"id": id})
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}
