package services

import "net/http"

// NotFoundError carries the resource-specific code that ends up in the
// {message, code, status} error body.
type NotFoundError struct {
	Message string
	Code    string
}

func (e *NotFoundError) Error() string { return e.Message }

func (e *NotFoundError) Status() int { return http.StatusNotFound }

var (
	ErrProductNotFound = &NotFoundError{Message: "Product not found", Code: "PRODUCT_NOT_FOUND"}
	ErrOrderNotFound   = &NotFoundError{Message: "Order not found", Code: "ORDER_NOT_FOUND"}
	ErrUserNotFound    = &NotFoundError{Message: "User not found", Code: "USER_NOT_FOUND"}
)
