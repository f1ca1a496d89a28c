package domain

import "math"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

var PaymentMethods = []string{
	"Credit Card", "Debit Card", "PayPal", "Bank Transfer", "Cash on Delivery",
}

func ValidPaymentMethod(s string) bool {
	for _, m := range PaymentMethods {
		if m == s {
			return true
		}
	}
	return false
}

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// orderTransitions keeps the source's permissive machine: Processing may jump
// straight to Delivered, Cancelled is reachable from any non-terminal state.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusShipped, StatusDelivered, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

// OrderItem is a point-in-time snapshot; it never reads back through to the product.
type OrderItem struct {
	OrderID   string  `db:"order_id" json:"-"`
	ProductID string  `db:"product_id" json:"productId"`
	Name      string  `db:"name" json:"name"`
	Image     string  `db:"image" json:"image"`
	Qty       int     `db:"qty" json:"quantity"`
	Price     float64 `db:"price" json:"price"`
}

// Order is the API-facing shape; repos scan flat rows and convert.
type Order struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Shipping       ShippingAddress `json:"shippingAddress"`
	PaymentMethod  string          `json:"paymentMethod"`
	ItemsPrice     float64         `json:"itemsPrice"`
	ShippingPrice  float64         `json:"shippingPrice"`
	TaxPrice       float64         `json:"taxPrice"`
	Total          float64         `json:"totalAmount"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	OrderStatus    OrderStatus     `json:"orderStatus"`
	TrackingNumber string          `json:"trackingNumber,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	PaidAt         string          `json:"paidAt,omitempty"`
	DeliveredAt    string          `json:"deliveredAt,omitempty"`
	CreatedAt      string          `json:"createdAt"`
	Items          []OrderItem     `json:"items"`
}

const (
	FreeShippingOver = 100.0
	FlatShipping     = 10.0
	TaxRate          = 0.10
)

// PriceOrder derives the shipping/tax/total breakdown from an items subtotal.
// The result is fixed at order creation and never recomputed.
func PriceOrder(itemsPrice float64) (shipping, tax, total float64) {
	shipping = FlatShipping
	if itemsPrice > FreeShippingOver {
		shipping = 0
	}
	tax = RoundMoney(itemsPrice * TaxRate)
	total = RoundMoney(itemsPrice + shipping + tax)
	return shipping, tax, total
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
