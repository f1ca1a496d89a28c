package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopforge/internal/log"
	"shopforge/internal/services"
	"shopforge/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartItemBody struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// GET /api/v1/cart
func (h *CartHandler) Get(c *fiber.Ctx) error {
	cart, err := h.Cart.Get(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, cart)
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var body cartItemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	pid, okID := validate.ID(body.ProductID)
	if !okID {
		return badRequest(c, "productId is required")
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	cart, err := h.Cart.Add(currentUser(c).ID, pid, body.Quantity)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.add", map[string]any{"product": pid, "qty": body.Quantity})
	return ok(c, fiber.StatusOK, cart)
}

// PUT /api/v1/cart/items/:productId
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.Params("productId"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	var body cartItemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}

	cart, err := h.Cart.Update(currentUser(c).ID, pid, body.Quantity)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.update", map[string]any{"product": pid, "qty": body.Quantity})
	return ok(c, fiber.StatusOK, cart)
}

// DELETE /api/v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.Params("productId"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	cart, err := h.Cart.Remove(currentUser(c).ID, pid)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": pid})
	return ok(c, fiber.StatusOK, cart)
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(currentUser(c).ID); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "cart.clear", nil)
	return okMsg(c, fiber.StatusOK, "cart cleared", nil)
}

// POST /api/v1/cart/validate
func (h *CartHandler) Validate(c *fiber.Ctx) error {
	cart, problems, err := h.Cart.Validate(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	if len(problems) > 0 {
		applog.Info(c, "cart.validate.corrected", map[string]any{"corrections": len(problems)})
	}
	return c.Status(fiber.StatusOK).JSON(envelope{Success: true, Data: cart, Errors: problems})
}
