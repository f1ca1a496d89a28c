package domain

import "fmt"

// Business errors carry enough context to render the human-readable
// messages the API returns. Handlers map them to HTTP statuses.

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return e.Resource + " not found"
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	if e.Reason == "" {
		return "access denied"
	}
	return e.Reason
}

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid input"
	}
	return e.Problems[0]
}

type EmptyCartError struct{}

func (e *EmptyCartError) Error() string { return "cart is empty" }

type ProductUnavailableError struct {
	ProductID string
	Name      string
}

func (e *ProductUnavailableError) Error() string {
	n := e.Name
	if n == "" {
		n = e.ProductID
	}
	return fmt.Sprintf("product %q is no longer available", n)
}

type InsufficientStockError struct {
	ProductID string
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	n := e.Name
	if n == "" {
		n = e.ProductID
	}
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", n, e.Requested, e.Available)
}

type AlreadyPaidError struct {
	OrderID string
}

func (e *AlreadyPaidError) Error() string {
	return fmt.Sprintf("order %s is already paid", e.OrderID)
}

type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
