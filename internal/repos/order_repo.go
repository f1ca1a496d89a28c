package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"shopforge/internal/domain"
)

type OrderRepo struct{ DB *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{DB: db} }

// orderRow is the flat scan target; domain.Order is the API shape.
type orderRow struct {
	ID             string         `db:"id"`
	UserID         sql.NullString `db:"user_id"` // cleared when the account is deleted

	ShipFullName   string         `db:"ship_full_name"`
	ShipAddress    string         `db:"ship_address"`
	ShipCity       string         `db:"ship_city"`
	ShipState      string         `db:"ship_state"`
	ShipZip        string         `db:"ship_zip"`
	ShipCountry    string         `db:"ship_country"`
	ShipPhone      string         `db:"ship_phone"`
	PaymentMethod  string         `db:"payment_method"`
	ItemsPrice     float64        `db:"items_price"`
	ShippingPrice  float64        `db:"shipping_price"`
	TaxPrice       float64        `db:"tax_price"`
	Total          float64        `db:"total"`
	PaymentStatus  string         `db:"payment_status"`
	OrderStatus    string         `db:"order_status"`
	TrackingNumber string         `db:"tracking_number"`
	Notes          string         `db:"notes"`
	PaidAt         sql.NullString `db:"paid_at"`
	DeliveredAt    sql.NullString `db:"delivered_at"`
	CreatedAt      string         `db:"created_at"`
}

func (r orderRow) toDomain() domain.Order {
	return domain.Order{
		ID:     r.ID,
		UserID: r.UserID.String,
		Shipping: domain.ShippingAddress{
			FullName: r.ShipFullName,
			Address:  r.ShipAddress,
			City:     r.ShipCity,
			State:    r.ShipState,
			ZipCode:  r.ShipZip,
			Country:  r.ShipCountry,
			Phone:    r.ShipPhone,
		},
		PaymentMethod:  r.PaymentMethod,
		ItemsPrice:     r.ItemsPrice,
		ShippingPrice:  r.ShippingPrice,
		TaxPrice:       r.TaxPrice,
		Total:          r.Total,
		PaymentStatus:  domain.PaymentStatus(r.PaymentStatus),
		OrderStatus:    domain.OrderStatus(r.OrderStatus),
		TrackingNumber: r.TrackingNumber,
		Notes:          r.Notes,
		PaidAt:         r.PaidAt.String,
		DeliveredAt:    r.DeliveredAt.String,
		CreatedAt:      r.CreatedAt,
	}
}

const orderCols = `
  id, user_id, ship_full_name, ship_address, ship_city, ship_state, ship_zip,
  ship_country, ship_phone, payment_method, items_price, shipping_price,
  tax_price, total, payment_status, order_status, tracking_number, notes,
  paid_at, delivered_at, created_at`

// CreateTx inserts the order header and its snapshot items inside the
// caller's checkout transaction.
func (r *OrderRepo) CreateTx(tx *sqlx.Tx, o *domain.Order) error {
	_, err := tx.Exec(`
	  INSERT INTO orders
	    (id, user_id, ship_full_name, ship_address, ship_city, ship_state, ship_zip,
	     ship_country, ship_phone, payment_method, items_price, shipping_price,
	     tax_price, total, payment_status, order_status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.Shipping.FullName, o.Shipping.Address, o.Shipping.City,
		o.Shipping.State, o.Shipping.ZipCode, o.Shipping.Country, o.Shipping.Phone,
		o.PaymentMethod, o.ItemsPrice, o.ShippingPrice, o.TaxPrice, o.Total,
		string(o.PaymentStatus), string(o.OrderStatus))
	if err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, image, qty, price)
		  VALUES(?,?,?,?,?,?)
		`, o.ID, it.ProductID, it.Name, it.Image, it.Qty, it.Price); err != nil {
			return err
		}
	}
	return nil
}

func (r *OrderRepo) Get(orderID string) (domain.Order, error) {
	var row orderRow
	if err := r.DB.Get(&row, `SELECT`+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, err
	}
	o := row.toDomain()
	items, err := r.items(r.DB, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepo) items(q sqlx.Queryer, orderID string) ([]domain.OrderItem, error) {
	items := []domain.OrderItem{}
	err := sqlx.Select(q, &items, `
		SELECT order_id, product_id, name, image, qty, price
		FROM order_items WHERE order_id = ? ORDER BY name
	`, orderID)
	return items, err
}

func (r *OrderRepo) ItemsTx(tx *sqlx.Tx, orderID string) ([]domain.OrderItem, error) {
	return r.items(tx, orderID)
}

func (r *OrderRepo) ListByUser(userID string) ([]domain.Order, error) {
	return r.list(`WHERE user_id = ? ORDER BY datetime(created_at) DESC`, userID)
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(`ORDER BY datetime(created_at) DESC LIMIT ?`, limit)
}

func (r *OrderRepo) list(tail string, args ...any) ([]domain.Order, error) {
	rows := []orderRow{}
	if err := r.DB.Select(&rows, `SELECT`+orderCols+` FROM orders `+tail, args...); err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		o := row.toDomain()
		items, err := r.items(r.DB, o.ID)
		if err != nil {
			return nil, err
		}
		o.Items = items
		out = append(out, o)
	}
	return out, nil
}

// UpdateStatus writes a validated status, conditional on the order still
// being in the state the transition was validated against; deliveredAt is
// stamped the first time the order reaches Delivered. RowsAffected == 0
// means the status moved under the caller.
func (r *OrderRepo) UpdateStatus(orderID string, from, status domain.OrderStatus, trackingNumber, notes *string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE orders
		SET order_status = ?,
		    tracking_number = COALESCE(?, tracking_number),
		    notes = COALESCE(?, notes),
		    delivered_at = CASE
		      WHEN ? = 'Delivered' AND delivered_at IS NULL THEN CURRENT_TIMESTAMP
		      ELSE delivered_at
		    END
		WHERE id = ? AND order_status = ?
	`, string(status), trackingNumber, notes, string(status), orderID, string(from))
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// MarkPaid flips Pending to Paid; RowsAffected == 0 means it was not pending.
func (r *OrderRepo) MarkPaid(orderID string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE orders
		SET payment_status = 'Paid', paid_at = CURRENT_TIMESTAMP
		WHERE id = ? AND payment_status = 'Pending'
	`, orderID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// CancelTx flips a non-terminal order to Cancelled/Refunded inside the
// stock-restore transaction. RowsAffected == 0 means the order was already
// terminal, so the caller must not restore stock.
func (r *OrderRepo) CancelTx(tx *sqlx.Tx, orderID string) (bool, error) {
	res, err := tx.Exec(`
		UPDATE orders SET order_status = 'Cancelled', payment_status = 'Refunded'
		WHERE id = ? AND order_status NOT IN ('Delivered','Cancelled')
	`, orderID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ---------- Admin stats (on-demand aggregation, no running counters) ----------

type MonthlyBucket struct {
	Year    int     `db:"y" json:"year"`
	Month   int     `db:"m" json:"month"`
	Orders  int     `db:"orders" json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

type OrderStats struct {
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    float64         `json:"totalRevenue"`
	ByOrderStatus   map[string]int  `json:"ordersByStatus"`
	ByPaymentStatus map[string]int  `json:"ordersByPaymentStatus"`
	Monthly         []MonthlyBucket `json:"monthly"`
}

func (r *OrderRepo) Stats() (OrderStats, error) {
	s := OrderStats{
		ByOrderStatus:   map[string]int{},
		ByPaymentStatus: map[string]int{},
		Monthly:         []MonthlyBucket{},
	}

	if err := r.DB.Get(&s.TotalOrders, `SELECT COUNT(*) FROM orders`); err != nil {
		return s, err
	}
	// Revenue counts only paid orders.
	if err := r.DB.Get(&s.TotalRevenue,
		`SELECT COALESCE(SUM(total),0) FROM orders WHERE payment_status = 'Paid'`); err != nil {
		return s, err
	}

	type kv struct {
		K string `db:"k"`
		N int    `db:"n"`
	}
	var rows []kv
	if err := r.DB.Select(&rows,
		`SELECT order_status AS k, COUNT(*) AS n FROM orders GROUP BY order_status`); err != nil {
		return s, err
	}
	for _, row := range rows {
		s.ByOrderStatus[row.K] = row.N
	}
	rows = rows[:0]
	if err := r.DB.Select(&rows,
		`SELECT payment_status AS k, COUNT(*) AS n FROM orders GROUP BY payment_status`); err != nil {
		return s, err
	}
	for _, row := range rows {
		s.ByPaymentStatus[row.K] = row.N
	}

	err := r.DB.Select(&s.Monthly, `
		SELECT CAST(strftime('%Y', created_at) AS INTEGER) AS y,
		       CAST(strftime('%m', created_at) AS INTEGER) AS m,
		       COUNT(*) AS orders,
		       COALESCE(SUM(CASE WHEN payment_status = 'Paid' THEN total ELSE 0 END),0) AS revenue
		FROM orders
		WHERE datetime(created_at) >= datetime('now','-12 months')
		GROUP BY y, m
		ORDER BY y, m
	`)
	return s, err
}
