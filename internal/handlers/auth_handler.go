package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"jobboard/internal/dtos"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/services"
	"jobboard/internal/validation"
)

type AuthHandler struct {
	auth *services.AuthService
	log  *slog.Logger
}

func NewAuthHandler(auth *services.AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

// Login is POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var in dtos.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON format: " + err.Error()})
		return
	}

	if errs := validation.Login(&in); errs.Any() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Validation failed",
			"errors":  errs,
		})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed."})
		return
	}

	c.JSON(http.StatusOK, dtos.TokenResponse{Token: token})
}

// Logout is POST /api/auth/logout, bearer-authenticated.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.CurrentToken(c)
	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Logout failed."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// Ping is GET /api, a liveness probe.
func Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
