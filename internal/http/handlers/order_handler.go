package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopforge/internal/domain"
	applog "shopforge/internal/log"
	"shopforge/internal/services"
	"shopforge/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

type createOrderBody struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// POST /api/v1/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var body createOrderBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	problems := validate.Address(body.ShippingAddress)
	method, okMethod := validate.PaymentMethod(body.PaymentMethod)
	if !okMethod {
		problems = append(problems, "paymentMethod must be one of: Credit Card, Debit Card, PayPal, Bank Transfer, Cash on Delivery")
	}
	if len(problems) > 0 {
		applog.Security(c, "validation.fail", map[string]any{"field": "order"})
		return badRequest(c, problems...)
	}

	o, err := h.Orders.Create(currentUser(c).ID, body.ShippingAddress, method)
	if err != nil {
		applog.Info(c, "order.create.fail", map[string]any{"error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "order.create", map[string]any{"order_id": o.ID, "total": o.Total})
	return okMsg(c, fiber.StatusCreated, "order created", o)
}

// GET /api/v1/orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.ListForUser(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, orders)
}

// GET /api/v1/orders/:id, owner or admin
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(currentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, o)
}

// PUT /api/v1/orders/:id/pay, owner or admin
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.MarkPaid(currentUser(c), id)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.pay", map[string]any{"order_id": id})
	return okMsg(c, fiber.StatusOK, "order paid", o)
}

// PUT /api/v1/orders/:id/cancel, owner only
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Cancel(currentUser(c).ID, id)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": id})
	return okMsg(c, fiber.StatusOK, "order cancelled", o)
}

type statusBody struct {
	OrderStatus    string  `json:"orderStatus"`
	TrackingNumber *string `json:"trackingNumber"`
	Notes          *string `json:"notes"`
}

// PUT /api/v1/orders/admin/:id/status, admin only
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid order id")
	}
	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	status, okStatus := validate.OrderStatus(body.OrderStatus)
	if !okStatus {
		return badRequest(c, "orderStatus must be one of: Processing, Shipped, Delivered, Cancelled")
	}

	o, err := h.Orders.UpdateStatus(id, status, body.TrackingNumber, body.Notes)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "order.status.update", map[string]any{"order_id": id, "status": string(status)})
	return okMsg(c, fiber.StatusOK, "order status updated", o)
}

// GET /api/v1/orders/admin, admin only
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	orders, err := h.Orders.ListLatest(100)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, orders)
}

// GET /api/v1/orders/admin/stats, admin only
func (h *OrderHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.Orders.AdminStats(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, stats)
}
