package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/baharkarakas/storefront/internal/api/httpx"
	"github.com/baharkarakas/storefront/internal/pagination"
	"github.com/baharkarakas/storefront/internal/services"
)

// pageParams reads page/limit from the query string, falling back to the
// defaults when absent or unparsable. Values are not range-checked.
func pageParams(r *http.Request) (page, limit int) {
	page, limit = pagination.DefaultPage, pagination.DefaultLimit
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			page = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	return page, limit
}

// floatParam returns nil when the parameter is absent or not a number.
func floatParam(r *http.Request, key string) *float64 {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// writeServiceError maps a service failure onto the wire: NotFound keeps its
// resource code, anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *services.NotFoundError
	if errors.As(err, &nf) {
		httpx.WriteError(w, nf.Status(), nf.Code, nf.Message)
		return
	}
	slog.Error("request failed", "path", r.URL.Path, "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
}
