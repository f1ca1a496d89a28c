package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jmoiron/sqlx"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
	"shopforge/internal/services"
)

func newCatalog(db *sqlx.DB) *services.CatalogService {
	return services.NewCatalogService(repos.NewProductRepo(db), repos.NewReviewRepo(db))
}

// seedCatalog replaces the fixture products with a wider spread for
// filter and pagination tests.
func seedCatalog(t *testing.T, db *sqlx.DB) {
	t.Helper()
	db.MustExec(`DELETE FROM products`)
	for i := 1; i <= 15; i++ {
		cat, brand := "Books", "Paper Co"
		if i%2 == 0 {
			cat, brand = "Electronics", "Acme"
		}
		featured := 0
		if i <= 3 {
			featured = 1
		}
		db.MustExec(
			`INSERT INTO products(id,name,brand,category,price,stock,featured,active,rating)
			 VALUES(?,?,?,?,?,10,?,1,?)`,
			fmt.Sprintf("p-%02d", i), fmt.Sprintf("Item %02d", i), brand, cat,
			float64(i)*10, featured, float64(i%5)+0.5,
		)
	}
	db.MustExec(`UPDATE products SET active=0 WHERE id='p-15'`)
}

func TestCatalogList_PaginatesActiveOnly(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	cat := newCatalog(db)

	page, err := cat.List(repos.ProductFilter{}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 14 { // p-15 is inactive
		t.Fatalf("want total 14, got %d", page.Total)
	}
	if page.PageSize != services.DefaultPageSize || len(page.Items) != 12 {
		t.Fatalf("bad first page: size=%d items=%d", page.PageSize, len(page.Items))
	}
	if page.TotalPages != 2 {
		t.Fatalf("want 2 pages, got %d", page.TotalPages)
	}

	page2, err := cat.List(repos.ProductFilter{}, "", 2, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(page2.Items) != 2 || page2.Page != 2 {
		t.Fatalf("bad second page: %+v", page2)
	}
}

func TestCatalogList_Filters(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	cat := newCatalog(db)

	byCat, err := cat.List(repos.ProductFilter{Category: "Electronics"}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range byCat.Items {
		if p.Category != "Electronics" {
			t.Fatalf("category leak: %+v", p)
		}
	}
	if byCat.Total != 7 {
		t.Fatalf("want 7 electronics, got %d", byCat.Total)
	}

	byBrand, err := cat.List(repos.ProductFilter{Brand: "acme"}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if byBrand.Total != 7 {
		t.Fatalf("brand match should be case-insensitive: %d", byBrand.Total)
	}

	lo, hi := 30.0, 60.0
	byPrice, err := cat.List(repos.ProductFilter{MinPrice: &lo, MaxPrice: &hi}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range byPrice.Items {
		if p.Price < lo || p.Price > hi {
			t.Fatalf("price out of range: %+v", p)
		}
	}
	if byPrice.Total != 4 { // 30,40,50,60
		t.Fatalf("want 4 in price band, got %d", byPrice.Total)
	}

	minR := 4.0
	byRating, err := cat.List(repos.ProductFilter{MinRating: &minR}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range byRating.Items {
		if p.Rating < minR {
			t.Fatalf("rating below floor: %+v", p)
		}
	}

	bySearch, err := cat.List(repos.ProductFilter{Search: "item 07"}, "", 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if bySearch.Total != 1 || bySearch.Items[0].ID != "p-07" {
		t.Fatalf("bad search result: %+v", bySearch.Items)
	}
}

func TestCatalogList_Sorting(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	cat := newCatalog(db)

	asc, err := cat.List(repos.ProductFilter{}, "price_asc", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(asc.Items); i++ {
		if asc.Items[i].Price < asc.Items[i-1].Price {
			t.Fatalf("price_asc out of order at %d", i)
		}
	}

	desc, err := cat.List(repos.ProductFilter{}, "price_desc", 1, 20)
	if err != nil {
		t.Fatal(err)
	}
	if desc.Items[0].Price != 140 {
		t.Fatalf("price_desc should start at 140, got %v", desc.Items[0].Price)
	}

	// unknown sort keys fall back to the default ordering, not an error
	if _, err := cat.List(repos.ProductFilter{}, "bogus; DROP TABLE products", 1, 5); err != nil {
		t.Fatalf("unknown sort rejected: %v", err)
	}
}

func TestCatalogFeatured(t *testing.T) {
	db := memdb(t)
	seedCatalog(t, db)
	cat := newCatalog(db)

	page, err := cat.Featured(1)
	if err != nil {
		t.Fatal(err)
	}
	if page.Total != 3 || page.PageSize != services.FeaturedPageSize {
		t.Fatalf("bad featured page: %+v", page)
	}
	for _, p := range page.Items {
		if !p.Featured {
			t.Fatalf("non-featured product listed: %+v", p)
		}
	}
}

func TestCatalogGet(t *testing.T) {
	db := memdb(t)
	cat := newCatalog(db)

	p, reviews, err := cat.Get("p-1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Widget" || len(reviews) != 0 {
		t.Fatalf("bad detail: %+v %v", p, reviews)
	}

	_, _, err = cat.Get("p-missing")
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}
