package domain

import "testing"

func TestPriceOrder(t *testing.T) {
	cases := []struct {
		items, shipping, tax, total float64
	}{
		{60.00, 10.00, 6.00, 76.00},
		{100.00, 10.00, 10.00, 120.00}, // boundary: exactly 100 still pays shipping
		{100.01, 0, 10.00, 110.01},
		{160.00, 0, 16.00, 176.00},
		{0.00, 10.00, 0, 10.00},
	}
	for _, c := range cases {
		shipping, tax, total := PriceOrder(c.items)
		if shipping != c.shipping || tax != c.tax || total != c.total {
			t.Errorf("PriceOrder(%v) = %v,%v,%v want %v,%v,%v",
				c.items, shipping, tax, total, c.shipping, c.tax, c.total)
		}
		if total != RoundMoney(c.items+shipping+tax) {
			t.Errorf("PriceOrder(%v): total %v does not equal sum of parts", c.items, total)
		}
	}
}

func TestRoundMoney(t *testing.T) {
	if got := RoundMoney(19.999); got != 20.00 {
		t.Fatalf("want 20.00, got %v", got)
	}
	if got := RoundMoney(0.1 + 0.2); got != 0.30 {
		t.Fatalf("want 0.30, got %v", got)
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusDelivered},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCancelled},
	}
	for _, c := range allowed {
		if !c.from.CanTransitionTo(c.to) {
			t.Errorf("%s -> %s should be allowed", c.from, c.to)
		}
	}

	for _, terminal := range []OrderStatus{StatusDelivered, StatusCancelled} {
		if !terminal.Terminal() {
			t.Errorf("%s should be terminal", terminal)
		}
		for _, to := range []OrderStatus{StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
			if terminal.CanTransitionTo(to) {
				t.Errorf("%s -> %s should be rejected", terminal, to)
			}
		}
	}

	if StatusShipped.CanTransitionTo(StatusProcessing) {
		t.Error("Shipped -> Processing should be rejected")
	}
	if StatusProcessing.CanTransitionTo(StatusProcessing) {
		t.Error("self transition should be rejected")
	}
}
