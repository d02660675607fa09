package middleware

import (
	"errors"
	"log"
	"strings"

	"katalog/internal/auth"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// TokenValidator resolves a bearer token into an identity.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Identity, error)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// Authenticate resolves the caller from an optional bearer token and stores the
// identity in the request context. Requests without a usable token continue as guests.
func Authenticate(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		identity, err := validator.ValidateToken(token)
		if err != nil {
			log.Printf("Ignoring bearer token on %s %s: %v", c.Method(), c.Path(), err)
			return c.Next()
		}
		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// AuthRequired rejects requests without a valid bearer token with 401 and stores
// the identity of the others.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get(fiber.HeaderAuthorization) == "" {
			return unauthorized(c, "Authorization header is required")
		}

		// Expected format: "Bearer <token>"
		token, ok := bearerToken(c)
		if !ok {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'")
		}

		identity, err := validator.ValidateToken(token)
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return unauthorized(c, "Invalid or expired token")
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

// RequireCapability lets the request through only when the stored identity holds
// capability: guests get 401, other callers 403.
func RequireCapability(capability auth.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := auth.Authorize(IdentityFrom(c), capability)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, auth.ErrUnauthenticated):
			return unauthorized(c, "Unauthenticated.")
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  "error",
				"message": "This action is unauthorized.",
			})
		}
	}
}

// Guard chains AuthRequired and RequireCapability.
func Guard(validator TokenValidator, capability auth.Capability) []fiber.Handler {
	return []fiber.Handler{AuthRequired(validator), RequireCapability(capability)}
}

// IdentityFrom returns the identity of the caller, or nil for guests.
func IdentityFrom(c *fiber.Ctx) *auth.Identity {
	identity, _ := c.Locals(identityKey).(*auth.Identity)
	return identity
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}
