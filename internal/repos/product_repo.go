package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"shopforge/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// ProductFilter is the catalog query surface: every field is optional.
type ProductFilter struct {
	Category   string
	Brand      string // case-insensitive substring
	Search     string // free text over name/description
	MinPrice   *float64
	MaxPrice   *float64
	MinRating  *float64
	Featured   *bool
	ActiveOnly bool
}

var sortClauses = map[string]string{
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
	"rating":     "rating DESC",
	"newest":     "created_at DESC",
	"oldest":     "created_at ASC",
	"name":       "LOWER(name) ASC",
}

func buildFilter(f ProductFilter) (string, []any) {
	where := `1=1`
	args := []any{}
	if f.ActiveOnly {
		where += ` AND active = 1`
	}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Brand != "" {
		where += ` AND LOWER(brand) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`
		q := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, q, q)
	}
	if f.MinPrice != nil {
		where += ` AND price >= ?`
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where += ` AND price <= ?`
		args = append(args, *f.MaxPrice)
	}
	if f.MinRating != nil {
		where += ` AND rating >= ?`
		args = append(args, *f.MinRating)
	}
	if f.Featured != nil {
		where += ` AND featured = ?`
		args = append(args, boolToInt(*f.Featured))
	}
	return where, args
}

const productCols = `
  id, name, description, brand, category, price, stock, image, featured, active,
  rating, num_reviews, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List(f ProductFilter, sort string, limit, offset int) ([]domain.Product, error) {
	where, args := buildFilter(f)
	order, ok := sortClauses[sort]
	if !ok {
		order = sortClauses["newest"]
	}
	sql := `SELECT` + productCols + ` FROM products WHERE ` + where +
		` ORDER BY ` + order + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Count(f ProductFilter) (int, error) {
	where, args := buildFilter(f)
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE `+where, args...)
	return n, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT`+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id,name,description,brand,category,price,stock,image,featured,active,created_at)
	  VALUES(?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Description, p.Brand, p.Category, p.Price, p.Stock, p.Image,
		boolToInt(p.Featured), boolToInt(p.Active))
	return err
}

func (r *ProductRepo) Update(p domain.Product) (bool, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name=?, description=?, brand=?, category=?, price=?, stock=?, image=?, featured=?, active=?,
	      updated_at=CURRENT_TIMESTAMP
	  WHERE id=?
	`, p.Name, p.Description, p.Brand, p.Category, p.Price, p.Stock, p.Image,
		boolToInt(p.Featured), boolToInt(p.Active), p.ID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Deactivate soft-deletes: the product disappears from listings and carts
// drop its lines lazily; existing order snapshots are untouched.
func (r *ProductRepo) Deactivate(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE products SET active=0, updated_at=CURRENT_TIMESTAMP WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ProductRepo) SetStock(id string, stock int) (bool, error) {
	res, err := r.db.Exec(`UPDATE products SET stock=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, stock, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ReserveStockTx atomically subtracts qty if enough stock exists.
// A zero RowsAffected means the conditional update refused to go negative.
func (r *ProductRepo) ReserveStockTx(tx *sqlx.Tx, productID string, qty int) (bool, error) {
	res, err := tx.Exec(`
		UPDATE products
		SET stock = stock - ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND stock >= ?
	`, qty, productID, qty)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RestoreStockTx is the exact inverse of ReserveStockTx, used by cancellation.
func (r *ProductRepo) RestoreStockTx(tx *sqlx.Tx, productID string, qty int) error {
	_, err := tx.Exec(`
		UPDATE products
		SET stock = stock + ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, qty, productID)
	return err
}

// StockTx reads current stock inside the transaction, for error reporting
// after a refused reservation.
func (r *ProductRepo) StockTx(tx *sqlx.Tx, productID string) (int, error) {
	var n int
	err := tx.Get(&n, `SELECT stock FROM products WHERE id = ?`, productID)
	return n, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
