package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"showcase/api/logger"
	"showcase/api/models"
	"showcase/api/requestdata"
	"showcase/api/store"
	"showcase/api/utils"
)

const authCookie = "jwt_token"

// UserRepository stores admin accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, email string, hashedPassword []byte, role models.Role) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandlers struct {
	users        UserRepository
	jwt          *utils.JWTManager
	log          *logger.Logger
	secureCookie bool
}

func NewAuthHandlers(users UserRepository, jwt *utils.JWTManager, secureCookie bool, log *logger.Logger) *AuthHandlers {
	return &AuthHandlers{users: users, jwt: jwt, secureCookie: secureCookie, log: log.With("component", "auth")}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks the credentials and issues a JWT both as the jwt_token cookie
// and in the response body.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	email := normalizeEmail(req.Email)

	user, err := h.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Error("user lookup failed", "email", email, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate"})
			return
		}
		h.log.Info("login failed: unknown user", "email", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		h.log.Info("login failed: password mismatch", "email", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		h.log.Error("failed to generate token", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate authentication token"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, token, int(h.jwt.TTL().Seconds()), "/", "", h.secureCookie, true)

	h.log.Info("user logged in", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// CreateUser adds an admin account. Only superadmins and API key callers may
// create users.
func (h *AuthHandlers) CreateUser(c *gin.Context) {
	info := requestdata.FromContext(c.Request.Context())
	if !info.Superuser && (info.Claims == nil || info.Claims.Role != models.RoleSuperAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only superadmins can create users"})
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	role := req.Role
	if role == "" {
		role = models.RoleViewer
	}

	user, err := h.createUser(c.Request.Context(), normalizeEmail(req.Email), req.Password, role)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
			return
		}
		h.log.Error("failed to create user", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	h.log.Info("user created", "user_id", user.ID, "role", user.Role)
	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandlers) createUser(ctx context.Context, email, password string, role models.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	return h.users.CreateUser(ctx, email, hashed, role)
}

// EnsureSuperAdmin creates the configured superadmin unless an account with
// that email already exists. An empty password skips the bootstrap.
func (h *AuthHandlers) EnsureSuperAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		h.log.Warn("superadmin bootstrap skipped: SUPERADMIN_PASSWORD not set")
		return nil
	}
	_, err := h.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("looking up superadmin: %w", err)
	}
	if _, err := h.createUser(ctx, email, password, models.RoleSuperAdmin); err != nil && !errors.Is(err, store.ErrConflict) {
		return fmt.Errorf("creating superadmin: %w", err)
	}
	h.log.Info("superadmin created", "email", email)
	return nil
}
