package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// OrderItem is a snapshot of a product at order time; name and price are
// stored values, never re-derived from the products collection.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID              string      `json:"id"`
	CustomerName    string      `json:"customerName"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	OrderDate       time.Time   `json:"orderDate"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderCreate is the POST /orders body. Total comes from the client and is
// stored as supplied, not recomputed from the items.
type OrderCreate struct {
	CustomerName    string      `json:"customerName"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	OrderDate       time.Time   `json:"orderDate"`
}

// OrderPatch is the PUT /orders/{id} body. Items are replaced wholesale when
// present, not merged per element.
type OrderPatch struct {
	CustomerName    *string      `json:"customerName"`
	UserID          *string      `json:"userId"`
	Items           *[]OrderItem `json:"items"`
	Total           *float64     `json:"total"`
	Status          *OrderStatus `json:"status"`
	ShippingAddress *string      `json:"shippingAddress"`
	OrderDate       *time.Time   `json:"orderDate"`
}

func (op OrderPatch) Apply(o *Order) {
	if op.CustomerName != nil {
		o.CustomerName = *op.CustomerName
	}
	if op.UserID != nil {
		o.UserID = *op.UserID
	}
	if op.Items != nil {
		o.Items = *op.Items
	}
	if op.Total != nil {
		o.Total = *op.Total
	}
	if op.Status != nil {
		o.Status = *op.Status
	}
	if op.ShippingAddress != nil {
		o.ShippingAddress = *op.ShippingAddress
	}
	if op.OrderDate != nil {
		o.OrderDate = *op.OrderDate
	}
}
