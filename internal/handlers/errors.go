package handlers

import (
	"errors"
	"log"

	"katalog/internal/auth"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

var errInvalidBody = errors.New("invalid request body")

// normalizer is implemented by schemas that clean their input before validation.
type normalizer interface {
	Normalize()
}

// parseBody decodes the JSON body into schema, normalizes and validates it. Type
// mismatches are reported as validation failures; any other decode failure is errInvalidBody.
func parseBody(c *fiber.Ctx, v *validation.Validator, schema interface{}) error {
	if err := c.BodyParser(schema); err != nil {
		if verr, ok := validation.FromDecodeError(err, schema); ok {
			return verr
		}
		log.Printf("Error parsing request body: %v", err)
		return errInvalidBody
	}
	if n, ok := schema.(normalizer); ok {
		n.Normalize()
	}
	return v.Validate(schema)
}

// guarded appends handler to a copy of guard.
func guarded(guard []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(guard)+1)
	chain = append(chain, guard...)
	return append(chain, handler)
}

// parseID reads the numeric :id route parameter. Anything else is treated as a missing record.
func parseID(c *fiber.Ctx, notFound error) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return 0, notFound
	}
	return uint(id), nil
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// respondError writes the error envelope matching err.
func respondError(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"status":  "error",
			"message": validation.Message,
			"errors":  verr.Fields,
		})
	case errors.Is(err, errInvalidBody):
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	case errors.Is(err, repositories.ErrCategoryNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Category not found.")
	case errors.Is(err, repositories.ErrProductNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Product not found.")
	case errors.Is(err, repositories.ErrUserNotFound):
		return errorJSON(c, fiber.StatusNotFound, "User not found.")
	case errors.Is(err, repositories.ErrCategoryInUse):
		return errorJSON(c, fiber.StatusConflict, repositories.ErrCategoryInUse.Error())
	case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, auth.ErrUnauthenticated):
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthenticated.")
	case errors.Is(err, auth.ErrForbidden):
		return errorJSON(c, fiber.StatusForbidden, "This action is unauthorized.")
	}

	log.Printf("Error handling %s %s: %v", c.Method(), c.OriginalURL(), err)
	return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
}

// ErrorHandler is the Fiber error handler. Router errors keep their status code;
// everything else goes through respondError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorJSON(c, fe.Code, fe.Message)
	}
	return respondError(c, err)
}
