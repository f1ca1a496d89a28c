package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"shopforge/internal/domain"
	applog "shopforge/internal/log"
	"shopforge/internal/repos"
	"shopforge/internal/validate"
)

// AdminHandler owns catalog and user administration. Order administration
// lives on OrderHandler since it shares the engine.
type AdminHandler struct {
	Prods *repos.ProductRepo
	Users *repos.UserRepo
}

type productBody struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image"`
	Featured    bool    `json:"featured"`
	Active      *bool   `json:"isActive"`
}

func (b productBody) problems() []string {
	var problems []string
	if _, okName := validate.Name(b.Name); !okName {
		problems = append(problems, "name is required (max 60 characters)")
	}
	if _, okCat := validate.Category(b.Category); !okCat {
		problems = append(problems, "unknown category")
	}
	if b.Price < 0 {
		problems = append(problems, "price must not be negative")
	}
	if b.Stock < 0 {
		problems = append(problems, "stock must not be negative")
	}
	return problems
}

// POST /api/v1/products, admin only
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	if problems := body.problems(); len(problems) > 0 {
		return badRequest(c, problems...)
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}
	p := domain.Product{
		ID:          uuid.NewString(),
		Name:        body.Name,
		Description: body.Description,
		Brand:       body.Brand,
		Category:    body.Category,
		Price:       body.Price,
		Stock:       body.Stock,
		Image:       body.Image,
		Featured:    body.Featured,
		Active:      active,
	}
	if err := h.Prods.Create(p); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product": p.ID})
	created, err := h.Prods.Get(p.ID)
	if err != nil {
		return fail(c, err)
	}
	return okMsg(c, fiber.StatusCreated, "product created", created)
}

// PUT /api/v1/products/:id, admin only
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	var body productBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	if problems := body.problems(); len(problems) > 0 {
		return badRequest(c, problems...)
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}
	p := domain.Product{
		ID:          id,
		Name:        body.Name,
		Description: body.Description,
		Brand:       body.Brand,
		Category:    body.Category,
		Price:       body.Price,
		Stock:       body.Stock,
		Image:       body.Image,
		Featured:    body.Featured,
		Active:      active,
	}
	found, err := h.Prods.Update(p)
	if err != nil {
		return fail(c, err)
	}
	if !found {
		return fail(c, &domain.NotFoundError{Resource: "product", ID: id})
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product": id})
	updated, err := h.Prods.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return okMsg(c, fiber.StatusOK, "product updated", updated)
}

// DELETE /api/v1/products/:id, admin only; soft delete so existing order
// snapshots keep their references.
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	found, err := h.Prods.Deactivate(id)
	if err != nil {
		return fail(c, err)
	}
	if !found {
		return fail(c, &domain.NotFoundError{Resource: "product", ID: id})
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product": id})
	return okMsg(c, fiber.StatusOK, "product deactivated", nil)
}

type stockBody struct {
	Stock int `json:"stock"`
}

// PUT /api/v1/products/:id/stock, admin only
func (h *AdminHandler) SetStock(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	var body stockBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	if body.Stock < 0 {
		return badRequest(c, "stock must not be negative")
	}
	found, err := h.Prods.SetStock(id, body.Stock)
	if err != nil {
		return fail(c, err)
	}
	if !found {
		return fail(c, &domain.NotFoundError{Resource: "product", ID: id})
	}
	applog.Audit(c, "admin.product.stock", map[string]any{"product": id, "stock": body.Stock})
	return okMsg(c, fiber.StatusOK, "stock updated", nil)
}

// GET /api/v1/admin/users, admin only
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.Users.List()
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, users)
}

// DELETE /api/v1/admin/users/:id, admin only; open orders are cancelled
// and retained for audit.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid user id")
	}
	if id == currentUser(c).ID {
		return badRequest(c, "cannot delete your own account")
	}
	if _, err := h.Users.ByID(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, &domain.NotFoundError{Resource: "user", ID: id})
		}
		return fail(c, err)
	}
	if err := h.Users.DeleteUserCascade(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "admin.users.delete", map[string]any{"user_id": id})
	return okMsg(c, fiber.StatusOK, "user deleted", nil)
}
