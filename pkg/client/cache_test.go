package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/storefront/pkg/client"
)

func page(products []client.Product, pageNum, limit, total int) client.Page[client.Product] {
	return client.Page[client.Product]{
		Data:    products,
		Total:   total,
		Page:    pageNum,
		Limit:   limit,
		HasMore: pageNum*limit < total,
	}
}

func TestListServedFromCache(t *testing.T) {
	var listCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		writeJSON(w, http.StatusOK, page([]client.Product{{ID: "p1"}}, 1, 10, 1))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)
	params := client.ListParams{Page: 1, Limit: 10}

	first, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)
	second, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), listCalls.Load(), "second read must hit the cache")

	// A different page is a different key.
	_, err = c.Products().List(context.Background(), client.ListParams{Page: 2, Limit: 10}, client.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load())
}

func TestCreateInvalidatesListCache(t *testing.T) {
	var listCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusCreated, client.Product{ID: "p2", Name: "Gadget"})
			return
		}
		listCalls.Add(1)
		writeJSON(w, http.StatusOK, page([]client.Product{{ID: "p1"}}, 1, 10, 1))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)
	params := client.ListParams{Page: 1, Limit: 10}

	_, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), listCalls.Load())

	_, err = c.Products().Create(context.Background(), client.ProductCreate{Name: "Gadget"})
	require.NoError(t, err)

	_, err = c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), listCalls.Load(), "create must mark list entries stale")
}

func TestUpdateInvalidatesRecordCache(t *testing.T) {
	var getCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			writeJSON(w, http.StatusOK, client.Product{ID: "p1", Name: "Renamed"})
		default:
			getCalls.Add(1)
			writeJSON(w, http.StatusOK, client.Product{ID: "p1", Name: "Widget"})
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)

	_, err := c.Products().Get(context.Background(), "p1")
	require.NoError(t, err)
	_, err = c.Products().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), getCalls.Load())

	name := "Renamed"
	_, err = c.Products().Update(context.Background(), "p1", client.ProductPatch{Name: &name})
	require.NoError(t, err)

	_, err = c.Products().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), getCalls.Load(), "update must mark the record entry stale")
}

func TestOptimisticDeleteRestoresSnapshotOnFailure(t *testing.T) {
	var listCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		listCalls.Add(1)
		writeJSON(w, http.StatusOK, page([]client.Product{{ID: "p1"}, {ID: "p2"}}, 1, 10, 2))
	})
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"message": "disk full", "code": "INTERNAL_ERROR", "status": 500,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)
	params := client.ListParams{Page: 1, Limit: 10}

	before, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, before.Data, 2)

	_, err = c.Products().DeleteOptimistic(context.Background(), "p1", params)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)

	// The pre-delete snapshot is back: no refetch, p1 still present.
	after, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, int32(1), listCalls.Load())
}

func TestOptimisticDeleteStepsBackPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		// Page 2 holds the last remaining record.
		writeJSON(w, http.StatusOK, page([]client.Product{{ID: "p11"}}, 2, 10, 11))
	})
	mux.HandleFunc("/products/p11", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.Product{ID: "p11"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)
	params := client.ListParams{Page: 2, Limit: 10}

	_, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)

	next, err := c.Products().DeleteOptimistic(context.Background(), "p11", params)
	require.NoError(t, err)
	assert.Equal(t, 1, next, "emptied page past the first steps back")
}

func TestOptimisticDeleteStaysOnFirstPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, page([]client.Product{{ID: "p1"}}, 1, 10, 1))
	})
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, client.Product{ID: "p1"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)
	params := client.ListParams{Page: 1, Limit: 10}

	_, err := c.Products().List(context.Background(), params, client.ProductFilter{})
	require.NoError(t, err)

	next, err := c.Products().DeleteOptimistic(context.Background(), "p1", params)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}
