package repos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"shopforge/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

// EnsureCart lazily creates the user's cart on first access.
func (r *CartRepo) EnsureCart(userID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE user_id = ?`, userID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,user_id,updated_at) VALUES(?,?,?)`,
		userID, userID, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return userID, nil
}

// UpsertItem merges quantity into an existing line for the same product.
func (r *CartRepo) UpsertItem(cartID, productID string, qty int, price float64) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id,product_id,qty,price_at_add,created_at)
		VALUES(?,?,?,?,CURRENT_TIMESTAMP)
		ON CONFLICT(cart_id,product_id) DO UPDATE
		SET qty = cart_items.qty + excluded.qty, updated_at = CURRENT_TIMESTAMP
	`, cartID, productID, qty, price)
	return err
}

func (r *CartRepo) SetItemQty(cartID, productID string, qty int) (bool, error) {
	res, err := r.db.Exec(`
		UPDATE cart_items SET qty = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, qty, cartID, productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *CartRepo) SetItemPrice(cartID, productID string, price float64) error {
	_, err := r.db.Exec(`
		UPDATE cart_items SET price_at_add = ?, updated_at = CURRENT_TIMESTAMP
		WHERE cart_id = ? AND product_id = ?
	`, price, cartID, productID)
	return err
}

func (r *CartRepo) RemoveItem(cartID, productID string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Items returns cart lines joined with live product state so callers can
// reconcile against current stock/price/active.
func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := r.db.Select(&out, `
	  SELECT ci.product_id, p.name, p.image, ci.qty, ci.price_at_add,
	         p.price AS current_price, p.stock, p.active
	  FROM cart_items ci JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return out, err
}

// CartLine is the reconciliation view: the product side is nullable so a
// line whose product vanished can still be seen and dropped.
type CartLine struct {
	ProductID    string          `db:"product_id"`
	Qty          int             `db:"qty"`
	PriceAtAdd   float64         `db:"price_at_add"`
	Name         sql.NullString  `db:"name"`
	Image        sql.NullString  `db:"image"`
	CurrentPrice sql.NullFloat64 `db:"current_price"`
	Stock        sql.NullInt64   `db:"stock"`
	Active       sql.NullBool    `db:"active"`
}

func (r *CartRepo) Lines(cartID string) ([]CartLine, error) {
	out := []CartLine{}
	err := r.db.Select(&out, `
	  SELECT ci.product_id, ci.qty, ci.price_at_add,
	         p.name, p.image, p.price AS current_price, p.stock, p.active
	  FROM cart_items ci LEFT JOIN products p ON p.id = ci.product_id
	  WHERE ci.cart_id = ?
	  ORDER BY ci.created_at
	`, cartID)
	return out, err
}

func (r *CartRepo) ItemQty(cartID, productID string) (int, error) {
	var qty int
	err := r.db.Get(&qty, `SELECT qty FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	return qty, err
}

// Clear removes all lines; the cart row persists for reuse.
func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}

func (r *CartRepo) ClearTx(tx *sqlx.Tx, cartID string) error {
	_, err := tx.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
