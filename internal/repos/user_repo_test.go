package repos_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopforge/internal/repos"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1) // in-memory sqlite is per-connection
	if err := repos.EnsureSchema(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestDeleteUserCascade(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)

	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('u-1','a@b.co','A','x','USER')`)
	db.MustExec(`INSERT INTO products(id,name,category,price,stock) VALUES('p-1','W','Other',5,10)`)
	if err := users.BindSession("sid-1", "u-1"); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`INSERT INTO carts(id,user_id) VALUES('u-1','u-1')`)
	db.MustExec(`INSERT INTO cart_items(cart_id,product_id,qty,price_at_add) VALUES('u-1','p-1',1,5)`)
	db.MustExec(`INSERT INTO orders(id,user_id,ship_full_name,ship_address,ship_city,ship_state,
	  ship_zip,ship_country,ship_phone,payment_method,items_price,shipping_price,tax_price,total)
	  VALUES('o-1','u-1','A','1 St','C','S','12345','US','5550100','PayPal',5,10,0.5,15.5)`)

	if err := users.DeleteUserCascade("u-1"); err != nil {
		t.Fatal(err)
	}

	var n int
	db.Get(&n, `SELECT COUNT(*) FROM users WHERE id='u-1'`)
	if n != 0 {
		t.Fatal("user not deleted")
	}
	db.Get(&n, `SELECT COUNT(*) FROM sessions`)
	if n != 0 {
		t.Fatal("sessions not cascaded")
	}
	db.Get(&n, `SELECT COUNT(*) FROM cart_items`)
	if n != 0 {
		t.Fatal("cart items not cascaded")
	}

	// the order survives, detached and cancelled
	var row struct {
		UserID        *string `db:"user_id"`
		OrderStatus   string  `db:"order_status"`
		PaymentStatus string  `db:"payment_status"`
	}
	if err := db.Get(&row, `SELECT user_id, order_status, payment_status FROM orders WHERE id='o-1'`); err != nil {
		t.Fatal(err)
	}
	if row.UserID != nil {
		t.Fatal("order still references the deleted user")
	}
	if row.OrderStatus != "Cancelled" || row.PaymentStatus != "Refunded" {
		t.Fatalf("open order not closed out: %+v", row)
	}
}

func TestDeleteUserCascade_TerminalOrdersUntouched(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)

	db.MustExec(`INSERT INTO users(id,email,name,password_hash,role) VALUES('u-1','a@b.co','A','x','USER')`)
	db.MustExec(`INSERT INTO orders(id,user_id,ship_full_name,ship_address,ship_city,ship_state,
	  ship_zip,ship_country,ship_phone,payment_method,items_price,shipping_price,tax_price,total,
	  payment_status,order_status)
	  VALUES('o-1','u-1','A','1 St','C','S','12345','US','5550100','PayPal',5,10,0.5,15.5,'Paid','Delivered')`)

	if err := users.DeleteUserCascade("u-1"); err != nil {
		t.Fatal(err)
	}
	var status string
	db.Get(&status, `SELECT order_status FROM orders WHERE id='o-1'`)
	if status != "Delivered" {
		t.Fatalf("delivered order rewritten: %s", status)
	}
}
