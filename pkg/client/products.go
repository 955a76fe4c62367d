package client

import (
	"context"
	"net/url"
	"strconv"
)

// ProductFilter holds the optional list constraints; zero values mean "no
// constraint". All present filters combine with AND.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}

type ProductsAPI struct {
	api *resourceAPI[Product, ProductCreate, ProductPatch]
}

func (c *Client) Products() *ProductsAPI {
	return &ProductsAPI{api: &resourceAPI[Product, ProductCreate, ProductPatch]{
		c:    c,
		name: "products",
		id:   func(p Product) string { return p.ID },
	}}
}

func (p *ProductsAPI) List(ctx context.Context, params ListParams, f ProductFilter) (Page[Product], error) {
	q := params.query()
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	return p.api.list(ctx, "/products", q)
}

func (p *ProductsAPI) ByCategory(ctx context.Context, category string, params ListParams) (Page[Product], error) {
	return p.api.list(ctx, "/products/category/"+url.PathEscape(category), params.query())
}

func (p *ProductsAPI) Get(ctx context.Context, id string) (Product, error) {
	return p.api.Get(ctx, id)
}

func (p *ProductsAPI) Create(ctx context.Context, in ProductCreate) (Product, error) {
	return p.api.Create(ctx, in)
}

func (p *ProductsAPI) Update(ctx context.Context, id string, patch ProductPatch) (Product, error) {
	return p.api.Update(ctx, id, patch)
}

func (p *ProductsAPI) Delete(ctx context.Context, id string) (Product, error) {
	return p.api.Delete(ctx, id)
}

func (p *ProductsAPI) DeleteOptimistic(ctx context.Context, id string, params ListParams) (int, error) {
	return p.api.DeleteOptimistic(ctx, id, params)
}
