package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/yourusername/foliogen-api/internal/middleware"
	"github.com/yourusername/foliogen-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users  *repository.UserRepo
	issuer *middleware.TokenIssuer
}

func NewAuthHandler(users *repository.UserRepo, issuer *middleware.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, issuer: issuer}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		FullName string `json:"fullName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}
	if len(req.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to check existing user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Email, string(hash), req.FullName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	access, refresh, err := h.issueTokenPair(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Signup failed"})
		return
	}

	log.Info().Str("userId", user.ID.String()).Msg("User signed up")

	c.JSON(http.StatusCreated, gin.H{
		"user":         user,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	access, refresh, err := h.issueTokenPair(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Refresh handles POST /auth/refresh. A valid refresh token yields a fresh
// pair and invalidates the old one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refreshToken is required"})
		return
	}

	userID, err := h.issuer.Verify(req.RefreshToken, middleware.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	ok, err := h.users.CheckRefreshToken(c.Request.Context(), userID, hashToken(req.RefreshToken))
	if err != nil {
		log.Error().Err(err).Msg("Failed to check refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		return
	}
	if !ok {
		// Token was already rotated or revoked
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token no longer valid"})
		return
	}

	access, refresh, err := h.issueTokenPair(c, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

// Logout handles POST /auth/logout (authenticated)
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := h.users.RevokeRefreshToken(c.Request.Context(), userID); err != nil {
		log.Error().Err(err).Msg("Failed to revoke refresh token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me handles GET /auth/me (authenticated)
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// issueTokenPair creates access+refresh tokens and stores the refresh hash
// for rotation
func (h *AuthHandler) issueTokenPair(c *gin.Context, userID uuid.UUID) (string, string, error) {
	access, err := h.issuer.IssueAccessToken(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue access token")
		return "", "", err
	}
	refresh, err := h.issuer.IssueRefreshToken(userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue refresh token")
		return "", "", err
	}
	if err := h.users.StoreRefreshToken(c.Request.Context(), userID, hashToken(refresh)); err != nil {
		log.Error().Err(err).Msg("Failed to store refresh token")
		return "", "", err
	}
	return access, refresh, nil
}

// ── Helpers ──────────────────────────────────────────

// hashToken hashes a refresh token for at-rest storage
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// getUserID extracts the authenticated user's UUID from the request context
func getUserID(c *gin.Context) (uuid.UUID, error) {
	s := middleware.GetUserID(c)
	if s == "" {
		return uuid.Nil, fmt.Errorf("no authenticated user")
	}
	return uuid.Parse(s)
}
