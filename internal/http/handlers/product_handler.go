package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	applog "shopforge/internal/log"
	"shopforge/internal/repos"
	"shopforge/internal/services"
	"shopforge/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Reviews *services.ReviewService
}

func parseFloatQ(c *fiber.Ctx, key string) *float64 {
	s := c.Query(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	f := repos.ProductFilter{
		Brand:     c.Query("brand"),
		Search:    c.Query("q"),
		MinPrice:  parseFloatQ(c, "minPrice"),
		MaxPrice:  parseFloatQ(c, "maxPrice"),
		MinRating: parseFloatQ(c, "minRating"),
	}
	if cat := c.Query("category"); cat != "" {
		valid, okCat := validate.Category(cat)
		if !okCat {
			return badRequest(c, "unknown category")
		}
		f.Category = valid
	}
	if s := c.Query("featured"); s != "" {
		featured := s == "true" || s == "1"
		f.Featured = &featured
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	sort := c.Query("sort", "newest")

	pageData, err := h.Catalog.List(f, sort, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, pageData)
}

// GET /api/v1/products/featured
func (h *ProductHandler) Featured(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageData, err := h.Catalog.Featured(page)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, pageData)
}

// GET /api/v1/products/:id
func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		applog.Security(c, "validation.fail", map[string]any{"field": "product"})
		return badRequest(c, "invalid product id")
	}
	p, reviews, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"product": p, "reviews": reviews})
}

type reviewBody struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// POST /api/v1/products/:id/reviews
func (h *ProductHandler) AddReview(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("id"))
	if !okID {
		return badRequest(c, "invalid product id")
	}
	var body reviewBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "malformed request body")
	}
	if !validate.Rating(body.Rating) {
		return badRequest(c, "rating must be between 1 and 5")
	}

	rev, err := h.Reviews.Add(currentUser(c), id, body.Rating, body.Comment)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "review.add", map[string]any{"product": id, "rating": body.Rating})
	return okMsg(c, fiber.StatusCreated, "review added", rev)
}
