package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"shopforge/internal/cache"
	"shopforge/internal/domain"
	"shopforge/internal/metrics"
	"shopforge/internal/repos"
)

// OrderService owns the cart→order transition and the order state machine.
// Order insert, stock decrement and cart clear commit as one transaction;
// a refused conditional decrement rolls the whole checkout back.
type OrderService struct {
	Carts  *repos.CartRepo
	Prods  *repos.ProductRepo
	Orders *repos.OrderRepo
	Stats  cache.StatsCache
}

func NewOrderService(carts *repos.CartRepo, prods *repos.ProductRepo, orders *repos.OrderRepo, stats cache.StatsCache) *OrderService {
	if stats == nil {
		stats = cache.Nop{}
	}
	return &OrderService{Carts: carts, Prods: prods, Orders: orders, Stats: stats}
}

func (s *OrderService) Create(userID string, addr domain.ShippingAddress, paymentMethod string) (domain.Order, error) {
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return domain.Order{}, err
	}
	items, err := s.Carts.Items(cartID)
	if err != nil {
		return domain.Order{}, err
	}
	if len(items) == 0 {
		metrics.CheckoutFailures.WithLabelValues("empty_cart").Inc()
		return domain.Order{}, &domain.EmptyCartError{}
	}

	// All-or-nothing validation against current catalog state: the first
	// failing line aborts with no side effects.
	for _, it := range items {
		if !it.Active {
			metrics.CheckoutFailures.WithLabelValues("unavailable").Inc()
			return domain.Order{}, &domain.ProductUnavailableError{ProductID: it.ProductID, Name: it.Name}
		}
		if it.Stock < it.Qty {
			metrics.CheckoutFailures.WithLabelValues("stock").Inc()
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: it.ProductID, Name: it.Name,
				Requested: it.Qty, Available: it.Stock,
			}
		}
	}

	// Snapshot lines at the catalog's current price, not the stale
	// cart-captured one.
	var itemsPrice float64
	snapshot := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		snapshot = append(snapshot, domain.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Image:     it.Image,
			Qty:       it.Qty,
			Price:     it.CurrentPrice,
		})
		itemsPrice += it.CurrentPrice * float64(it.Qty)
	}
	itemsPrice = domain.RoundMoney(itemsPrice)
	shipping, tax, total := domain.PriceOrder(itemsPrice)

	o := domain.Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		Shipping:      addr,
		PaymentMethod: paymentMethod,
		ItemsPrice:    itemsPrice,
		ShippingPrice: shipping,
		TaxPrice:      tax,
		Total:         total,
		PaymentStatus: domain.PaymentPending,
		OrderStatus:   domain.StatusProcessing,
		Items:         snapshot,
	}

	tx, err := s.Orders.DB.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.Orders.CreateTx(tx, &o); err != nil {
		return domain.Order{}, err
	}
	for _, it := range o.Items {
		ok, err := s.Prods.ReserveStockTx(tx, it.ProductID, it.Qty)
		if err != nil {
			return domain.Order{}, err
		}
		if !ok {
			// Stock moved under us since validation; report what is left.
			avail, aerr := s.Prods.StockTx(tx, it.ProductID)
			if aerr != nil {
				avail = 0
			}
			metrics.CheckoutFailures.WithLabelValues("stock").Inc()
			return domain.Order{}, &domain.InsufficientStockError{
				ProductID: it.ProductID, Name: it.Name,
				Requested: it.Qty, Available: avail,
			}
		}
	}
	if err := s.Carts.ClearTx(tx, cartID); err != nil {
		return domain.Order{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	s.Stats.InvalidateOrderStats(context.Background())
	return s.Orders.Get(o.ID)
}

// Cancel is the unique reverse path: it restores stock for every line and
// marks the order Cancelled/Refunded. Terminal orders reject cancellation.
func (s *OrderService) Cancel(userID, orderID string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, &domain.NotFoundError{Resource: "order", ID: orderID}
		}
		return domain.Order{}, err
	}
	if o.UserID != userID {
		return domain.Order{}, &domain.ForbiddenError{Reason: "you do not own this order"}
	}
	if o.OrderStatus.Terminal() {
		return domain.Order{}, &domain.InvalidTransitionError{From: o.OrderStatus, To: domain.StatusCancelled}
	}

	tx, err := s.Orders.DB.Beginx()
	if err != nil {
		return domain.Order{}, err
	}
	defer func() { _ = tx.Rollback() }()

	// Flip first: the conditional update is the guard against a concurrent
	// cancel or delivery, so stock is restored at most once per order.
	flipped, err := s.Orders.CancelTx(tx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	if !flipped {
		_ = tx.Rollback()
		if cur, cerr := s.Orders.Get(orderID); cerr == nil {
			o = cur
		}
		return domain.Order{}, &domain.InvalidTransitionError{From: o.OrderStatus, To: domain.StatusCancelled}
	}
	items, err := s.Orders.ItemsTx(tx, o.ID)
	if err != nil {
		return domain.Order{}, err
	}
	for _, it := range items {
		if err := s.Prods.RestoreStockTx(tx, it.ProductID, it.Qty); err != nil {
			return domain.Order{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, err
	}

	metrics.OrdersCancelled.Inc()
	s.Stats.InvalidateOrderStats(context.Background())
	return s.Orders.Get(o.ID)
}

// UpdateStatus applies an admin status change. Cancelled set through this
// path is an administrative override and does not restore stock; Cancel is
// the only stock-restoring operation.
func (s *OrderService) UpdateStatus(orderID string, next domain.OrderStatus, trackingNumber, notes *string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, &domain.NotFoundError{Resource: "order", ID: orderID}
		}
		return domain.Order{}, err
	}
	if !o.OrderStatus.CanTransitionTo(next) {
		return domain.Order{}, &domain.InvalidTransitionError{From: o.OrderStatus, To: next}
	}
	applied, err := s.Orders.UpdateStatus(orderID, o.OrderStatus, next, trackingNumber, notes)
	if err != nil {
		return domain.Order{}, err
	}
	if !applied {
		// lost a race: the status moved since the transition was validated
		if cur, cerr := s.Orders.Get(orderID); cerr == nil {
			o = cur
		}
		return domain.Order{}, &domain.InvalidTransitionError{From: o.OrderStatus, To: next}
	}
	s.Stats.InvalidateOrderStats(context.Background())
	return s.Orders.Get(orderID)
}

// MarkPaid flips Pending→Paid for the owner or an admin; one-way.
func (s *OrderService) MarkPaid(caller *domain.User, orderID string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, &domain.NotFoundError{Resource: "order", ID: orderID}
		}
		return domain.Order{}, err
	}
	if o.UserID != caller.ID && !caller.IsAdmin() {
		return domain.Order{}, &domain.ForbiddenError{Reason: "you do not own this order"}
	}
	switch o.PaymentStatus {
	case domain.PaymentPaid:
		return domain.Order{}, &domain.AlreadyPaidError{OrderID: orderID}
	case domain.PaymentRefunded:
		return domain.Order{}, &domain.ValidationError{Problems: []string{"cannot pay a refunded order"}}
	}
	ok, err := s.Orders.MarkPaid(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !ok {
		// lost a race with another pay call
		return domain.Order{}, &domain.AlreadyPaidError{OrderID: orderID}
	}
	metrics.OrdersPaid.Inc()
	s.Stats.InvalidateOrderStats(context.Background())
	return s.Orders.Get(orderID)
}

func (s *OrderService) Get(caller *domain.User, orderID string) (domain.Order, error) {
	o, err := s.Orders.Get(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, &domain.NotFoundError{Resource: "order", ID: orderID}
		}
		return domain.Order{}, err
	}
	if o.UserID != caller.ID && !caller.IsAdmin() {
		return domain.Order{}, &domain.ForbiddenError{Reason: "you do not own this order"}
	}
	return o, nil
}

func (s *OrderService) ListForUser(userID string) ([]domain.Order, error) {
	return s.Orders.ListByUser(userID)
}

func (s *OrderService) ListLatest(limit int) ([]domain.Order, error) {
	return s.Orders.ListLatest(limit)
}

// AdminStats aggregates on demand; the redis cache only short-circuits
// repeat reads and is invalidated by every order write above.
func (s *OrderService) AdminStats(ctx context.Context) (repos.OrderStats, error) {
	var cached repos.OrderStats
	if s.Stats.GetOrderStats(ctx, &cached) {
		return cached, nil
	}
	stats, err := s.Orders.Stats()
	if err != nil {
		return repos.OrderStats{}, err
	}
	s.Stats.SetOrderStats(ctx, stats)
	return stats, nil
}
