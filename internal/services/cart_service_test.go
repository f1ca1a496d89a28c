package services_test

import (
	"errors"
	"strings"
	"testing"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
	"shopforge/internal/services"
)

func TestCartAdd_MergesDuplicateLines(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 2); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.Add("u-buyer", "p-1", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("want one merged line, got %d", len(cart.Items))
	}
	if cart.Items[0].Qty != 5 || cart.TotalItems != 5 {
		t.Fatalf("want merged qty 5, got %+v", cart.Items[0])
	}
	if cart.TotalPrice != 100.00 { // 5 x 20.00
		t.Fatalf("bad total: %v", cart.TotalPrice)
	}
}

func TestCartAdd_MergedQtyCappedByStock(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 4); err != nil { // stock 5
		t.Fatal(err)
	}
	_, err := svc.Add("u-buyer", "p-1", 2)
	var ins *domain.InsufficientStockError
	if !errors.As(err, &ins) {
		t.Fatalf("want InsufficientStockError, got %v", err)
	}
	if ins.Requested != 6 || ins.Available != 5 {
		t.Fatalf("bad detail: %+v", ins)
	}

	cart, err := svc.Get("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items[0].Qty != 4 {
		t.Fatalf("rejected add mutated the line: %+v", cart.Items[0])
	}
}

func TestCartAdd_UnknownOrInactiveProduct(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	_, err := svc.Add("u-buyer", "p-missing", 1)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}

	db.MustExec(`UPDATE products SET active=0 WHERE id='p-1'`)
	_, err = svc.Add("u-buyer", "p-1", 1)
	var unavailable *domain.ProductUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("want ProductUnavailableError, got %v", err)
	}
}

func TestCartUpdate_SetsAbsoluteQty(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 4); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.Update("u-buyer", "p-1", 2)
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items[0].Qty != 2 {
		t.Fatalf("want qty 2, got %+v", cart.Items[0])
	}

	if _, err := svc.Update("u-buyer", "p-1", 0); err == nil {
		t.Fatal("qty 0 accepted")
	}
	if _, err := svc.Update("u-buyer", "p-1", 9); err == nil {
		t.Fatal("over-stock qty accepted")
	}
	var nf *domain.NotFoundError
	if _, err := svc.Update("u-buyer", "p-2", 1); !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError for line not in cart, got %v", err)
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add("u-buyer", "p-2", 1); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.Remove("u-buyer", "p-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "p-2" {
		t.Fatalf("bad cart after remove: %+v", cart.Items)
	}
	var nf *domain.NotFoundError
	if _, err := svc.Remove("u-buyer", "p-1"); !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError on double remove, got %v", err)
	}

	if err := svc.Clear("u-buyer"); err != nil {
		t.Fatal(err)
	}
	cart, err = svc.Get("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", cart.Items)
	}
}

func TestCartValidate_ReconcilesAgainstCatalog(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add("u-buyer", "p-2", 2); err != nil {
		t.Fatal(err)
	}
	// catalog moves under the cart: p-1 stock shrinks and price rises,
	// p-2 is retired
	db.MustExec(`UPDATE products SET stock=3, price=22.00 WHERE id='p-1'`)
	db.MustExec(`UPDATE products SET active=0 WHERE id='p-2'`)

	cart, problems, err := svc.Validate("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 2 {
		t.Fatalf("want 2 problems, got %v", problems)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("want one surviving line, got %+v", cart.Items)
	}
	it := cart.Items[0]
	if it.ProductID != "p-1" || it.Qty != 3 {
		t.Fatalf("quantity not clamped: %+v", it)
	}
	if it.PriceAtAdd != 22.00 {
		t.Fatalf("captured price not refreshed: %+v", it)
	}

	var sawClamp, sawDrop bool
	for _, p := range problems {
		if strings.Contains(p, "in stock") {
			sawClamp = true
		}
		if strings.Contains(p, "no longer available") {
			sawDrop = true
		}
	}
	if !sawClamp || !sawDrop {
		t.Fatalf("problem report incomplete: %v", problems)
	}

	// corrections persisted: a second pass is clean
	_, problems, err = svc.Validate("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 0 {
		t.Fatalf("second validate still reports: %v", problems)
	}
}

func TestCartValidate_DropsZeroStockLines(t *testing.T) {
	db := memdb(t)
	svc := services.NewCartService(repos.NewCartRepo(db), repos.NewProductRepo(db))

	if _, err := svc.Add("u-buyer", "p-1", 2); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`UPDATE products SET stock=0 WHERE id='p-1'`)

	cart, problems, err := svc.Validate("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || len(problems) != 1 {
		t.Fatalf("want dropped line with one problem, got %+v %v", cart.Items, problems)
	}
}
