package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"katalog/internal/auth"
	"katalog/internal/models"
	"katalog/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for tokens that are malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when registering an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// DefaultTokenTTL is used when NewAuthService receives a non-positive lifetime.
const DefaultTokenTTL = 24 * time.Hour

// Token is a signed bearer token.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo  repositories.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// Register hashes the user's password and saves the user with the user role.
func (s *AuthService) Register(ctx context.Context, user *models.User) error {
	if err := s.ensureAvailable(ctx, user.Username, user.Email); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	user.Role = models.RoleUser

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return fmt.Errorf("%w: %s", ErrUsernameTaken, username)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return fmt.Errorf("%w: %s", ErrEmailTaken, email)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}
	return nil
}

// Login authenticates a user and returns a bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Token, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.IssueToken(user)
}

// IssueToken signs an HS256 token carrying the user's id, name and role.
func (s *AuthService) IssueToken(user *models.User) (*Token, error) {
	now := s.now()
	expiresAt := now.Add(s.tokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      expiresAt.Unix(),
		"iat":      now.Unix(),
		"jti":      uuid.NewString(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &Token{Value: tokenString, ExpiresAt: expiresAt}, nil
}

// ValidateToken parses and validates a token, returning the identity it carries.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	userID, ok := claims["user_id"].(float64)
	if !ok || userID < 1 {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}
	return &auth.Identity{UserID: uint(userID), Username: username, Role: role}, nil
}

// CurrentUser loads the account behind identity.
func (s *AuthService) CurrentUser(ctx context.Context, identity *auth.Identity) (*models.User, error) {
	if identity == nil {
		return nil, auth.ErrUnauthenticated
	}
	return s.userRepo.GetByID(ctx, identity.UserID)
}

// EnsureAdmin makes sure an admin account named username exists. An existing user
// is promoted; otherwise the account is created with the given email and password.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if user.IsAdmin() {
			return user, nil
		}
		if err := s.userRepo.UpdateRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return nil, fmt.Errorf("failed to promote %s: %w", username, err)
		}
		user.Role = models.RoleAdmin
		log.Printf("Promoted user %s to admin", username)
		return user, nil
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	admin := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to create admin %s: %w", username, err)
	}
	log.Printf("Created admin user %s", username)
	return admin, nil
}
