package handlers

import (
	"log"

	"katalog/internal/middleware"
	"katalog/internal/requests"
	"katalog/internal/resources"
	"katalog/internal/services"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validation.Validator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, validate *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

// RegisterRoutes registers the authentication routes. /me runs behind guard.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, guard []fiber.Handler) {
	router.Post("/register", h.HandleRegister)
	router.Post("/login", h.HandleLogin)
	router.Get("/me", guarded(guard, h.HandleMe)...)
}

// HandleRegister handles new user registration and signs the user in.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req requests.RegisterRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	user := req.User()
	if err := h.authService.Register(c.UserContext(), &user); err != nil {
		log.Printf("Error registering user %s: %v", user.Username, err)
		return respondError(c, err)
	}

	token, err := h.authService.IssueToken(&user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data":  resources.User(user),
		"token": token.Value,
	})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req requests.LoginRequest
	if err := parseBody(c, h.validate, &req); err != nil {
		return respondError(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":      token.Value,
		"token_type": "Bearer",
		"expires_at": token.ExpiresAt.UTC(),
	})
}

// HandleMe returns the account of the authenticated caller.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return errorJSON(c, fiber.StatusUnauthorized, "Unauthenticated.")
	}
	user, err := h.authService.CurrentUser(c.UserContext(), identity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources.NewItem(resources.User(*user)))
}
