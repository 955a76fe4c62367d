package services

import (
	"errors"
	"time"

	"github.com/baharkarakas/storefront/internal/metrics"
	"github.com/baharkarakas/storefront/internal/models"
	"github.com/baharkarakas/storefront/internal/pagination"
	"github.com/baharkarakas/storefront/internal/store"
)

type OrderFilter struct {
	Status string
	UserID string
}

type OrderService struct {
	s *store.Store
}

func NewOrderService(s *store.Store) *OrderService { return &OrderService{s: s} }

func (svc *OrderService) List(f OrderFilter, page, limit int) pagination.Page[models.Order] {
	filtered := []models.Order{}
	for _, o := range svc.s.Orders() {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		filtered = append(filtered, o)
	}
	return pagination.Paginate(filtered, page, limit)
}

func (svc *OrderService) ByUser(userID string, page, limit int) pagination.Page[models.Order] {
	return svc.List(OrderFilter{UserID: userID}, page, limit)
}

func (svc *OrderService) Get(id string) (models.Order, error) {
	o, err := svc.s.FindOrder(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return o, err
}

// Create stores the order as supplied: items are snapshots and the total is
// the client's figure, not recomputed.
func (svc *OrderService) Create(in models.OrderCreate) (models.Order, error) {
	now := time.Now().UTC()
	o, err := svc.s.AddOrder(models.Order{
		CustomerName:    in.CustomerName,
		UserID:          in.UserID,
		Items:           in.Items,
		Total:           in.Total,
		Status:          in.Status,
		ShippingAddress: in.ShippingAddress,
		OrderDate:       in.OrderDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("orders", "create").Inc()
	}
	return o, err
}

func (svc *OrderService) Update(id string, patch models.OrderPatch) (models.Order, error) {
	o, err := svc.s.MutateOrder(id, func(o *models.Order) {
		patch.Apply(o)
		o.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("orders", "update").Inc()
	}
	return o, err
}

func (svc *OrderService) Delete(id string) (models.Order, error) {
	o, err := svc.s.RemoveOrder(id)
	if errors.Is(err, store.ErrNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err == nil {
		metrics.MutationsTotal.WithLabelValues("orders", "delete").Inc()
	}
	return o, err
}
