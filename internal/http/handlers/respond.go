package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopforge/internal/domain"
	applog "shopforge/internal/log"
	"shopforge/internal/services"
)

// envelope is the uniform response shape: {success, message?, data?, errors?}.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

func okMsg(c *fiber.Ctx, status int, msg string, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Message: msg, Data: data})
}

func badRequest(c *fiber.Ctx, problems ...string) error {
	msg := "invalid input"
	if len(problems) > 0 {
		msg = problems[0]
	}
	return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: msg, Errors: problems})
}

// fail maps the business error taxonomy onto HTTP statuses. Anything
// unrecognized is a storage/unexpected failure: logged, surfaced as a
// generic 500.
func fail(c *fiber.Ctx, err error) error {
	var (
		notFound      *domain.NotFoundError
		forbidden     *domain.ForbiddenError
		validation    *domain.ValidationError
		emptyCart     *domain.EmptyCartError
		unavailable   *domain.ProductUnavailableError
		noStock       *domain.InsufficientStockError
		alreadyPaid   *domain.AlreadyPaidError
		badTransition *domain.InvalidTransitionError
	)
	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(envelope{Success: false, Message: err.Error()})
	case errors.As(err, &forbidden):
		return c.Status(fiber.StatusForbidden).JSON(envelope{Success: false, Message: err.Error()})
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: err.Error(), Errors: validation.Problems})
	case errors.As(err, &emptyCart),
		errors.As(err, &unavailable),
		errors.As(err, &noStock),
		errors.As(err, &alreadyPaid),
		errors.As(err, &badTransition):
		return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: err.Error()})
	case errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(envelope{Success: false, Message: err.Error()})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(envelope{Success: false, Message: "Something went wrong. Please try again."})
}
