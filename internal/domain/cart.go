package domain

type CartItem struct {
	ProductID  string  `db:"product_id" json:"productId"`
	Name       string  `db:"name" json:"name"`
	Image      string  `db:"image" json:"image"`
	Qty        int     `db:"qty" json:"quantity"`
	PriceAtAdd float64 `db:"price_at_add" json:"price"`
	// Live product state, joined on read for reconciliation.
	CurrentPrice float64 `db:"current_price" json:"-"`
	Stock        int     `db:"stock" json:"stock"`
	Active       bool    `db:"active" json:"isActive"`
}

// Cart is the per-user cart view with derived totals.
type Cart struct {
	UserID     string     `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

func NewCart(userID string, items []CartItem) Cart {
	c := Cart{UserID: userID, Items: items}
	if c.Items == nil {
		c.Items = []CartItem{}
	}
	for _, it := range items {
		c.TotalItems += it.Qty
		c.TotalPrice += float64(it.Qty) * it.PriceAtAdd
	}
	c.TotalPrice = RoundMoney(c.TotalPrice)
	return c
}
