package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/strokeside/rowing-analysis-go/internal/middleware"
	"github.com/strokeside/rowing-analysis-go/pkg/response"
)

const tokenTTL = 24 * time.Hour

// AuthHandler issues API tokens for the single admin credential.
type AuthHandler struct {
	secret        string
	adminPassword string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(secret, adminPassword string) *AuthHandler {
	return &AuthHandler{secret: secret, adminPassword: adminPassword}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid login request", err)
		return
	}
	if req.Password != h.adminPassword {
		response.Error(c, http.StatusUnauthorized, "Invalid credentials", nil)
		return
	}

	now := time.Now()
	claims := middleware.Claims{
		Subject: req.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to sign token", err)
		return
	}

	response.Success(c, gin.H{
		"token":     token,
		"expiresAt": now.Add(tokenTTL),
	})
}
