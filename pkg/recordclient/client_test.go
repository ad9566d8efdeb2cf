package recordclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testProduct struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "category", r.URL.Query().Get("_expand"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]testProduct{
			{ID: 4, Name: "Thai Tea", Price: 15000},
			{ID: 3, Name: "Es Jeruk Kelapa", Price: 18000},
		})
	}))
	defer server.Close()

	client := New(server.URL)

	var products []testProduct
	err := client.List(context.Background(), "/products", &products, WithExpand("category"))
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Thai Tea", products[0].Name)
	assert.Equal(t, int64(15000), products[0].Price)
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/4", r.URL.Path)
		json.NewEncoder(w).Encode(testProduct{ID: 4, Name: "Thai Tea", Price: 15000})
	}))
	defer server.Close()

	client := New(server.URL)

	var product testProduct
	err := client.Get(context.Background(), "/products/4", &product)
	require.NoError(t, err)
	assert.Equal(t, uint(4), product.ID)
}

func TestClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body testProduct
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Kopi Susu", body.Name)

		body.ID = 9
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	client := New(server.URL)

	var created testProduct
	err := client.Create(context.Background(), "/products", testProduct{Name: "Kopi Susu", Price: 12000}, &created)
	require.NoError(t, err)
	assert.Equal(t, uint(9), created.ID)
}

func TestClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/4", r.URL.Path)
		json.NewEncoder(w).Encode(testProduct{ID: 4, Name: "Thai Tea Large", Price: 17000})
	}))
	defer server.Close()

	client := New(server.URL)

	var updated testProduct
	err := client.Update(context.Background(), "/products/4", testProduct{Name: "Thai Tea Large", Price: 17000}, &updated)
	require.NoError(t, err)
	assert.Equal(t, "Thai Tea Large", updated.Name)
}

func TestClient_Delete(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL)

	err := client.Delete(context.Background(), "/products/4")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestClient_BearerTokenHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := New(server.URL)

	// No token installed yet
	require.NoError(t, client.Get(context.Background(), "/products/1", nil))
	assert.Empty(t, gotAuth)

	client.SetAuthToken("abc123")
	require.NoError(t, client.Get(context.Background(), "/products/1", nil))
	assert.Equal(t, "Bearer abc123", gotAuth)

	client.ClearAuthToken()
	require.NoError(t, client.Get(context.Background(), "/products/1", nil))
	assert.Empty(t, gotAuth)
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "PRODUCT_NOT_FOUND",
			"message": "Product not found",
		})
	}))
	defer server.Close()

	client := New(server.URL)

	err := client.Get(context.Background(), "/products/999", &testProduct{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "PRODUCT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Product not found", apiErr.Message)
}

func TestClient_EmbedAndQueryOptions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "products", r.URL.Query().Get("_embed"))
		assert.Equal(t, "minuman", r.URL.Query().Get("q"))
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := New(server.URL)

	var categories []map[string]interface{}
	err := client.List(context.Background(), "/categories", &categories,
		WithEmbed("products"), WithQuery("q", "minuman"))
	require.NoError(t, err)
}
