package services

import (
	"errors"
	"strings"
	"time"

	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/models"
	"github.com/baharkarakas/storefront/internal/pagination"
	"github.com/baharkarakas/storefront/internal/store"
)

// ProductFilter holds the optional /products list constraints. Nil price
// bounds mean "no constraint"; all present filters are AND-combined and
// applied before pagination.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

type ProductService struct {
	s *store.Store
}

func NewProductService(s *store.Store) *ProductService { return &ProductService{s: s} }

func (svc *ProductService) List(f ProductFilter, page, limit int) pagination.Page[models.Product] {
	filtered := []models.Product{}
	search := strings.ToLower(f.Search)

	for _, p := range svc.s.Products() {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}
	return pagination.Paginate(filtered, page, limit)
}

func (svc *ProductService) ByCategory(category string, page, limit int) pagination.Page[models.Product] {
	return svc.List(ProductFilter{Category: category}, page, limit)
}

func (svc *ProductService) Get(id string) (models.Product, error) {
	p, err := svc.s.FindProduct(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (svc *ProductService) Create(in models.ProductCreate) (models.Product, error) {
	now := time.Now().UTC()
	p, err := svc.s.AddProduct(models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("products", "create").Inc()
	}
	return p, err
}

func (svc *ProductService) Update(id string, patch models.ProductPatch) (models.Product, error) {
	p, err := svc.s.MutateProduct(id, func(p *models.Product) {
		patch.Apply(p)
		p.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("products", "update").Inc()
	}
	return p, err
}

func (svc *ProductService) Delete(id string) (models.Product, error) {
	p, err := svc.s.RemoveProduct(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("products", "delete").Inc()
	}
	return p, err
}
