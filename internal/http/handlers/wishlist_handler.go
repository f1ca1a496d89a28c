package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopforge/internal/log"
	"shopforge/internal/services"
	"shopforge/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /api/v1/wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	items, err := h.Wish.List(currentUser(c).ID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, items)
}

type wishlistBody struct {
	ProductID string `json:"productId"`
}

// POST /api/v1/wishlist
func (h *WishlistHandler) Save(c *fiber.Ctx) error {
	var body wishlistBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	pid, okID := validate.ID(body.ProductID)
	if !okID {
		return badRequest(c, "productId is required")
	}
	if err := h.Wish.Save(currentUser(c).ID, pid); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "wishlist.save", map[string]any{"product": pid})
	return okMsg(c, fiber.StatusCreated, "saved to wishlist", nil)
}

// DELETE /api/v1/wishlist/:productId
func (h *WishlistHandler) Unsave(c *fiber.Ctx) error {
	pid, okID := validate.ID(c.Params("productId"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	if err := h.Wish.Unsave(currentUser(c).ID, pid); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "wishlist.unsave", map[string]any{"product": pid})
	return okMsg(c, fiber.StatusOK, "removed from wishlist", nil)
}
