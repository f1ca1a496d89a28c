package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shopforge", Subsystem: "orders",
		Name: "placed_total", Help: "Orders committed by checkout.",
	})
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shopforge", Subsystem: "orders",
		Name: "cancelled_total", Help: "Orders cancelled with stock restored.",
	})
	OrdersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "shopforge", Subsystem: "orders",
		Name: "paid_total", Help: "Orders marked paid.",
	})
	CheckoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopforge", Subsystem: "orders",
		Name: "checkout_failures_total", Help: "Checkout attempts rejected before commit.",
	}, []string{"reason"})
)
