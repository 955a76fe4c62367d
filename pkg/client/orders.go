package client

import (
	"context"
	"net/url"
)

type OrderFilter struct {
	Status OrderStatus
	UserID string
}

type OrdersAPI struct {
	api *resourceAPI[Order, OrderCreate, OrderPatch]
}

func (c *Client) Orders() *OrdersAPI {
	return &OrdersAPI{api: &resourceAPI[Order, OrderCreate, OrderPatch]{
		c:    c,
		name: "orders",
		id:   func(o Order) string { return o.ID },
	}}
}

func (o *OrdersAPI) List(ctx context.Context, params ListParams, f OrderFilter) (Page[Order], error) {
	q := params.query()
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.UserID != "" {
		q.Set("userId", f.UserID)
	}
	return o.api.list(ctx, "/orders", q)
}

func (o *OrdersAPI) ByUser(ctx context.Context, userID string, params ListParams) (Page[Order], error) {
	return o.api.list(ctx, "/orders/user/"+url.PathEscape(userID), params.query())
}

func (o *OrdersAPI) Get(ctx context.Context, id string) (Order, error) {
	return o.api.Get(ctx, id)
}

func (o *OrdersAPI) Create(ctx context.Context, in OrderCreate) (Order, error) {
	return o.api.Create(ctx, in)
}

func (o *OrdersAPI) Update(ctx context.Context, id string, patch OrderPatch) (Order, error) {
	return o.api.Update(ctx, id, patch)
}

func (o *OrdersAPI) Delete(ctx context.Context, id string) (Order, error) {
	return o.api.Delete(ctx, id)
}

func (o *OrdersAPI) DeleteOptimistic(ctx context.Context, id string, params ListParams) (int, error) {
	return o.api.DeleteOptimistic(ctx, id, params)
}
