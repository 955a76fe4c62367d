package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/storefront/internal/api/httpx"
	"github.com/baharkarakas/storefront/internal/models"
	"github.com/baharkarakas/storefront/internal/services"
)

type ProductHandler struct {
	svc *services.ProductService
}

func NewProductHandler(svc *services.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	f := services.ProductFilter{
		Category: r.URL.Query().Get("category"),
		MinPrice: floatParam(r, "minPrice"),
		MaxPrice: floatParam(r, "maxPrice"),
		Search:   r.URL.Query().Get("search"),
	}
	httpx.WriteJSON(w, http.StatusOK, h.svc.List(f, page, limit))
}

func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	category := chi.URLParam(r, "category")
	httpx.WriteJSON(w, http.StatusOK, h.svc.ByCategory(category, page, limit))
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ProductCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	p, err := h.svc.Create(in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.ProductPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	p, err := h.svc.Update(chi.URLParam(r, "id"), patch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Delete(chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}
