package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// resourceAPI implements the operation set shared by all three resources.
// Typed wrappers (ProductsAPI and friends) add the resource-specific filters
// and secondary lists.
type resourceAPI[T, C, P any] struct {
	c    *Client
	name string // URL segment, doubles as the cache-key prefix
	id   func(T) string
}

func (lp ListParams) query() url.Values {
	q := url.Values{}
	if lp.Page > 0 {
		q.Set("page", strconv.Itoa(lp.Page))
	}
	if lp.Limit > 0 {
		q.Set("limit", strconv.Itoa(lp.Limit))
	}
	return q
}

func (r *resourceAPI[T, C, P]) listKey(path string, query url.Values) string {
	return r.name + "|list|" + path + "?" + query.Encode()
}

func (r *resourceAPI[T, C, P]) recordKey(id string) string {
	return r.name + "|id|" + id
}

// list serves from the cache when the keyed entry is fresh, otherwise
// fetches and caches.
func (r *resourceAPI[T, C, P]) list(ctx context.Context, path string, query url.Values) (Page[T], error) {
	key := r.listKey(path, query)
	if v, ok := r.c.cache.get(key); ok {
		if page, ok := v.(Page[T]); ok {
			return page, nil
		}
	}
	var page Page[T]
	if err := r.c.do(ctx, http.MethodGet, path, query, nil, &page); err != nil {
		return Page[T]{}, err
	}
	r.c.cache.set(key, page)
	return page, nil
}

func (r *resourceAPI[T, C, P]) Get(ctx context.Context, id string) (T, error) {
	key := r.recordKey(id)
	if v, ok := r.c.cache.get(key); ok {
		if rec, ok := v.(T); ok {
			return rec, nil
		}
	}
	var rec T
	if err := r.c.do(ctx, http.MethodGet, "/"+r.name+"/"+url.PathEscape(id), nil, nil, &rec); err != nil {
		var zero T
		return zero, err
	}
	r.c.cache.set(key, rec)
	return rec, nil
}

// Create posts the new record and invalidates the resource's list entries so
// the next read refetches.
func (r *resourceAPI[T, C, P]) Create(ctx context.Context, in C) (T, error) {
	var rec T
	if err := r.c.do(ctx, http.MethodPost, "/"+r.name, nil, in, &rec); err != nil {
		var zero T
		return zero, err
	}
	r.c.cache.invalidate(r.name + "|list|")
	return rec, nil
}

// Update puts the patch and invalidates both the record entry and the list
// entries. No optimistic edit.
func (r *resourceAPI[T, C, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var rec T
	if err := r.c.do(ctx, http.MethodPut, "/"+r.name+"/"+url.PathEscape(id), nil, patch, &rec); err != nil {
		var zero T
		return zero, err
	}
	r.c.cache.invalidate(r.recordKey(id))
	r.c.cache.invalidate(r.name + "|list|")
	return rec, nil
}

func (r *resourceAPI[T, C, P]) Delete(ctx context.Context, id string) (T, error) {
	var rec T
	if err := r.c.do(ctx, http.MethodDelete, "/"+r.name+"/"+url.PathEscape(id), nil, nil, &rec); err != nil {
		var zero T
		return zero, err
	}
	r.c.cache.invalidate(r.recordKey(id))
	r.c.cache.invalidate(r.name + "|list|")
	return rec, nil
}

// DeleteOptimistic removes the record from the cached page before the server
// confirms, restoring the captured snapshot if the request fails. The
// returned page is params.Page, stepped back by one when the delete emptied
// a page past the first. The keyed page is the unfiltered list view.
func (r *resourceAPI[T, C, P]) DeleteOptimistic(ctx context.Context, id string, params ListParams) (int, error) {
	query := params.query()
	key := r.listKey("/"+r.name, query)

	snap, had := r.c.cache.snapshot(key)
	prevLen := 0
	if had {
		if page, ok := snap.(Page[T]); ok {
			prevLen = len(page.Data)
			trimmed := page
			trimmed.Data = make([]T, 0, len(page.Data))
			for _, rec := range page.Data {
				if r.id(rec) != id {
					trimmed.Data = append(trimmed.Data, rec)
				}
			}
			r.c.cache.set(key, trimmed)
		}
	}

	var deleted T
	if err := r.c.do(ctx, http.MethodDelete, "/"+r.name+"/"+url.PathEscape(id), nil, nil, &deleted); err != nil {
		if had {
			r.c.cache.set(key, snap)
		}
		return params.Page, err
	}

	r.c.cache.invalidate(r.recordKey(id))
	r.c.cache.invalidate(r.name + "|list|")

	if prevLen == 1 && params.Page > 1 {
		return params.Page - 1, nil
	}
	return params.Page, nil
}
