package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/storefront/pkg/client"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFoundBody() map[string]any {
	return map[string]any{
		"message": "Product not found",
		"code":    "PRODUCT_NOT_FOUND",
		"status":  404,
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, client.Product{ID: "p1"})
	}))
	defer srv.Close()

	ts := client.NewMemoryTokenStore()
	ts.SetTokens("acc-1", "ref-1")
	c := client.New(srv.URL, client.WithTokenStore(ts))

	_, err := c.Products().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Bearer acc-1", gotAuth)
}

func TestRefreshRetryOnce(t *testing.T) {
	var refreshCalls, productCalls atomic.Int32
	var authHeaders []string

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		var body struct {
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ref-1", body.RefreshToken)
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]string{
			"accessToken": "acc-2", "refreshToken": "ref-2",
		})
	})
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		productCalls.Add(1)
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		if r.Header.Get("Authorization") != "Bearer acc-2" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"message": "token expired", "code": "UNAUTHORIZED", "status": 401,
			})
			return
		}
		writeJSON(w, http.StatusOK, client.Product{ID: "p1", Name: "Widget"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ts := client.NewMemoryTokenStore()
	ts.SetTokens("acc-stale", "ref-1")
	c := client.New(srv.URL, client.WithTokenStore(ts))

	p, err := c.Products().Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Widget", p.Name)

	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), productCalls.Load())
	assert.Equal(t, []string{"Bearer acc-stale", "Bearer acc-2"}, authHeaders)

	access, refresh := ts.Tokens()
	assert.Equal(t, "acc-2", access)
	assert.Equal(t, "ref-2", refresh)
}

func TestRetriedRequestDoesNotRefreshAgain(t *testing.T) {
	var refreshCalls, productCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		writeJSON(w, http.StatusOK, map[string]string{
			"accessToken": "acc-2", "refreshToken": "ref-2",
		})
	})
	// Always 401: the retried request must surface the error instead of
	// looping through another refresh.
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		productCalls.Add(1)
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"message": "token expired", "code": "UNAUTHORIZED", "status": 401,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ts := client.NewMemoryTokenStore()
	ts.SetTokens("acc-1", "ref-1")
	c := client.New(srv.URL, client.WithTokenStore(ts))

	_, err := c.Products().Get(context.Background(), "p1")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int32(1), refreshCalls.Load())
	assert.Equal(t, int32(2), productCalls.Load())
}

func TestRefreshFailureExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"message": "invalid refresh token", "code": "INVALID_REFRESH_TOKEN", "status": 401,
		})
	})
	mux.HandleFunc("/products/p1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"message": "token expired", "code": "UNAUTHORIZED", "status": 401,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ts := client.NewMemoryTokenStore()
	ts.SetTokens("acc-1", "ref-dead")
	expired := false
	c := client.New(srv.URL,
		client.WithTokenStore(ts),
		client.WithSessionExpiredHook(func() { expired = true }),
	)

	_, err := c.Products().Get(context.Background(), "p1")
	assert.ErrorIs(t, err, client.ErrSessionExpired)
	assert.True(t, expired)

	access, refresh := ts.Tokens()
	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

func TestErrorNormalization(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/p404", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody())
	})
	mux.HandleFunc("/products/p500", func(w http.ResponseWriter, r *http.Request) {
		// No structured body.
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := client.New(srv.URL)

	_, err := c.Products().Get(context.Background(), "p404")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Product not found", apiErr.Message)
	assert.Equal(t, "PRODUCT_NOT_FOUND", apiErr.Code)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	_, err = c.Products().Get(context.Background(), "p500")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "An unexpected error occurred", apiErr.Message)
	assert.Equal(t, "UNKNOWN_ERROR", apiErr.Code)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestTransportErrorNormalization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := client.New(srv.URL)
	_, err := c.Products().Get(context.Background(), "p1")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNKNOWN_ERROR", apiErr.Code)
	assert.Equal(t, 500, apiErr.Status)
}

func TestLoginStoresTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Email, Password string }
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "s3cret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"message": "invalid email or password", "code": "INVALID_CREDENTIALS", "status": 401,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"accessToken": "acc-1", "refreshToken": "ref-1",
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	ts := client.NewMemoryTokenStore()
	c := client.New(srv.URL, client.WithTokenStore(ts))

	require.NoError(t, c.Login(context.Background(), "ada@example.com", "s3cret"))
	access, refresh := ts.Tokens()
	assert.Equal(t, "acc-1", access)
	assert.Equal(t, "ref-1", refresh)
}
