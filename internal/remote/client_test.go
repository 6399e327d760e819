package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wathera-admin/internal/domain"
)

func TestClient_FetchProducts_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		json.NewEncoder(w).Encode(domain.SampleProducts())
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	products, err := c.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 5)
	assert.Equal(t, "Wireless Bluetooth Headphones", products[0].Name)
}

func TestClient_FetchProducts_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchProducts(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_FetchProducts_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.FetchProducts(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_FetchProducts_Unreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 100*time.Millisecond)

	_, err := c.FetchProducts(context.Background())

	assert.ErrorIs(t, err, ErrFetchFailed)
}

func TestClient_CreateProduct_PostsAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/products/create", r.URL.Path)

		var p domain.Product
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = "assigned-by-service"
		json.NewEncoder(w).Encode(p)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	created, err := c.CreateProduct(context.Background(), domain.SampleProducts()[0])

	require.NoError(t, err)
	assert.Equal(t, "assigned-by-service", created.ID)
}

func TestClient_DeleteOrder_PathIncludesID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodDelete, r.Method)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.DeleteOrder(context.Background(), "ord-42")

	require.NoError(t, err)
	assert.Equal(t, "/orders/delete/ord-42", gotPath)
}

func TestClient_FetchOrders_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.SampleOrders())
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	orders, err := c.FetchOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 5)
	assert.Equal(t, "ORD-001", orders[0].Code)
}
