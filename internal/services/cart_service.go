package services

import (
	"database/sql"
	"errors"
	"fmt"

	"shopforge/internal/domain"
	"shopforge/internal/repos"
)

type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

// Get returns the user's cart, lazily dropping lines whose product has been
// deactivated since they were added.
func (s *CartService) Get(userID string) (domain.Cart, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Cart{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	kept := items[:0]
	for _, it := range items {
		if !it.Active {
			if _, err := s.Carts.RemoveItem(cartID, it.ProductID); err != nil {
				return domain.Cart{}, err
			}
			continue
		}
		kept = append(kept, it)
	}
	return domain.NewCart(userID, kept), nil
}

// Add merges into an existing line; the merged quantity must not exceed
// current stock. Stock is not reserved here; only checkout reserves.
func (s *CartService) Add(userID, productID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		qty = 1
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Cart{}, err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return domain.Cart{}, err
	}
	if !p.Active {
		return domain.Cart{}, &domain.ProductUnavailableError{ProductID: p.ID, Name: p.Name}
	}

	existing, err := s.Carts.ItemQty(cartID, productID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, err
	}
	merged := existing + qty
	if merged > p.Stock {
		return domain.Cart{}, &domain.InsufficientStockError{
			ProductID: p.ID, Name: p.Name, Requested: merged, Available: p.Stock,
		}
	}
	if err := s.Carts.UpsertItem(cartID, productID, qty, p.Price); err != nil {
		return domain.Cart{}, err
	}
	return s.Get(userID)
}

// Update sets a line to an absolute quantity, re-validated against stock.
func (s *CartService) Update(userID, productID string, qty int) (domain.Cart, error) {
	if qty < 1 {
		return domain.Cart{}, &domain.ValidationError{Problems: []string{"quantity must be at least 1"}}
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Cart{}, err
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Cart{}, &domain.NotFoundError{Resource: "product", ID: productID}
		}
		return domain.Cart{}, err
	}
	if qty > p.Stock {
		return domain.Cart{}, &domain.InsufficientStockError{
			ProductID: p.ID, Name: p.Name, Requested: qty, Available: p.Stock,
		}
	}
	found, err := s.Carts.SetItemQty(cartID, productID, qty)
	if err != nil {
		return domain.Cart{}, err
	}
	if !found {
		return domain.Cart{}, &domain.NotFoundError{Resource: "cart item", ID: productID}
	}
	return s.Get(userID)
}

func (s *CartService) Remove(userID, productID string) (domain.Cart, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Cart{}, err
	}
	found, err := s.Carts.RemoveItem(cartID, productID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !found {
		return domain.Cart{}, &domain.NotFoundError{Resource: "cart item", ID: productID}
	}
	return s.Get(userID)
}

func (s *CartService) Clear(userID string) error {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return err
	}
	return s.Carts.Clear(cartID)
}

// Validate reconciles every line against the catalog: missing or inactive
// products drop, over-stock quantities clamp, captured prices refresh.
// Corrections persist; the report lists what changed.
func (s *CartService) Validate(userID string) (domain.Cart, []string, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Cart{}, nil, err
	}
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return domain.Cart{}, nil, err
	}

	var problems []string
	for _, ln := range lines {
		switch {
		case !ln.Name.Valid:
			problems = append(problems, fmt.Sprintf("product %s no longer exists; removed from cart", ln.ProductID))
			if _, err := s.Carts.RemoveItem(cartID, ln.ProductID); err != nil {
				return domain.Cart{}, nil, err
			}
			continue
		case !ln.Active.Bool:
			problems = append(problems, fmt.Sprintf("%q is no longer available; removed from cart", ln.Name.String))
			if _, err := s.Carts.RemoveItem(cartID, ln.ProductID); err != nil {
				return domain.Cart{}, nil, err
			}
			continue
		}
		stock := int(ln.Stock.Int64)
		if ln.Qty > stock {
			problems = append(problems, fmt.Sprintf("only %d of %q in stock; quantity reduced from %d", stock, ln.Name.String, ln.Qty))
			if stock < 1 {
				if _, err := s.Carts.RemoveItem(cartID, ln.ProductID); err != nil {
					return domain.Cart{}, nil, err
				}
				continue
			}
			if _, err := s.Carts.SetItemQty(cartID, ln.ProductID, stock); err != nil {
				return domain.Cart{}, nil, err
			}
		}
		if ln.CurrentPrice.Float64 != ln.PriceAtAdd {
			if err := s.Carts.SetItemPrice(cartID, ln.ProductID, ln.CurrentPrice.Float64); err != nil {
				return domain.Cart{}, nil, err
			}
		}
	}

	cart, err := s.Get(userID)
	return cart, problems, err
}
