package services_test

import (
	"testing"

	"shopforge/internal/repos"
	"shopforge/internal/services"
)

func TestWishlistSaveListUnsave(t *testing.T) {
	db := memdb(t)
	svc := services.NewWishlistService(repos.NewWishlistRepo(db))

	if err := svc.Save("u-buyer", "p-1"); err != nil {
		t.Fatal(err)
	}
	// saving twice is a no-op, not an error
	if err := svc.Save("u-buyer", "p-1"); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save("u-buyer", "p-2"); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.List("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 saved products, got %+v", rows)
	}

	if err := svc.Unsave("u-buyer", "p-1"); err != nil {
		t.Fatal(err)
	}
	rows, err = svc.List("u-buyer")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].ProductID != "p-2" {
		t.Fatalf("bad wishlist after unsave: %+v", rows)
	}
}
