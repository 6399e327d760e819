package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/wathera-admin/internal/auth"
	"github.com/example/wathera-admin/internal/collection"
	"github.com/example/wathera-admin/internal/domain"
	"github.com/example/wathera-admin/internal/orders"
	"github.com/example/wathera-admin/internal/products"
	"github.com/example/wathera-admin/internal/storage"
	"github.com/example/wathera-admin/internal/view"
)

type Handlers struct {
	auth     *auth.Service
	products *products.Service
	orders   *orders.Service
	store    storage.Store
}

func NewHandlers(authSvc *auth.Service, productSvc *products.Service, orderSvc *orders.Service, store storage.Store) *Handlers {
	return &Handlers{
		auth:     authSvc,
		products: productSvc,
		orders:   orderSvc,
		store:    store,
	}
}

// Auth handlers

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    result.Token,
		Path:     "/",
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, result)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.auth.CurrentSession(r.Context())
	if err != nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, session)
}

func (h *Handlers) Remembered(w http.ResponseWriter, r *http.Request) {
	email, password, ok := h.auth.RememberedCredentials(r.Context())
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"remembered": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"remembered": true,
		"email":      email,
		"password":   password,
	})
}

// Product handlers

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r, []filterParam{
		{param: "category", field: "category"},
		{param: "active", field: "active"},
	}, rangeParam{minParam: "priceMin", maxParam: "priceMax", field: "price"})
	respondJSON(w, http.StatusOK, h.products.List(r.Context(), criteria))
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in domain.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := h.products.Create(r.Context(), in)
	if err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (h *Handlers) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	patch, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.products.Patch(r.Context(), id, patch); err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "product updated"})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	removed, err := h.products.Delete(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

type bulkIDsRequest struct {
	IDs []string `json:"ids"`
}

func (h *Handlers) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	removed, err := h.products.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

type bulkActiveRequest struct {
	IDs    []string `json:"ids"`
	Active bool     `json:"active"`
}

func (h *Handlers) BulkSetProductActive(w http.ResponseWriter, r *http.Request) {
	var req bulkActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	matched, err := h.products.SetActive(r.Context(), req.IDs, req.Active)
	if err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": matched})
}

func (h *Handlers) ProductOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.products.Overview(r.Context()))
}

// Order handlers

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	criteria := parseCriteria(r, []filterParam{
		{param: "status", field: "deliveryStatus"},
		{param: "payment", field: "paymentStatus"},
	}, rangeParam{minParam: "amountMin", maxParam: "amountMax", field: "totalAmount"})
	respondJSON(w, http.StatusOK, h.orders.List(r.Context(), criteria))
}

func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	o, err := h.orders.Create(r.Context(), in)
	if err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, o)
}

func (h *Handlers) PatchOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")
	patch, err := readBody(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orders.Patch(r.Context(), id, patch); err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "order updated"})
}

func (h *Handlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")
	removed, err := h.orders.Delete(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

func (h *Handlers) BulkDeleteOrders(w http.ResponseWriter, r *http.Request) {
	var req bulkIDsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	removed, err := h.orders.DeleteMany(r.Context(), req.IDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"removed": removed})
}

type bulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

func (h *Handlers) BulkSetOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req bulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	matched, err := h.orders.SetDeliveryStatus(r.Context(), req.IDs, domain.DeliveryStatus(req.Status))
	if err != nil {
		respondMutationError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"updated": matched})
}

func (h *Handlers) OrderOverview(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.orders.Overview(r.Context()))
}

// Dashboard

func (h *Handlers) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats := view.Dashboard(
		h.products.Collection().Load(r.Context()),
		h.orders.Collection().Load(r.Context()),
	)
	respondJSON(w, http.StatusOK, stats)
}

// Settings

func (h *Handlers) GetTheme(w http.ResponseWriter, r *http.Request) {
	raw, err := h.store.Get(r.Context(), storage.KeyTheme)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]string{"theme": "light"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"theme": string(raw)})
}

type themeRequest struct {
	Theme string `json:"theme"`
}

func (h *Handlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.Put(r.Context(), storage.KeyTheme, []byte(req.Theme)); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}

// ClearCache drops both cached collections so the next load re-seeds from the
// remote service or the sample data.
func (h *Handlers) ClearCache(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := h.orders.Clear(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "cache cleared"})
}

// respondMutationError maps service errors onto HTTP statuses: stale ids are
// reported as not found, validation problems as bad requests and a submission
// already in flight as a conflict.
func respondMutationError(w http.ResponseWriter, err error) {
	var fieldErr *domain.FieldError
	switch {
	case errors.Is(err, collection.ErrNotFound):
		respondError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, products.ErrBusy) || errors.Is(err, orders.ErrBusy):
		respondError(w, http.StatusConflict, err.Error())
	case errors.As(err, &fieldErr):
		respondFieldError(w, fieldErr)
	case errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmptyOrder):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondFieldError(w http.ResponseWriter, err *domain.FieldError) {
	respondJSON(w, http.StatusBadRequest, map[string]string{
		"error": err.Message,
		"field": err.Field,
	})
}

func extractPathParam(path, prefix string) string {
	return strings.TrimPrefix(path, prefix)
}
