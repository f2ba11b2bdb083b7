package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/service"
	"github.com/promoshare/promocode-backend/internal/validation"
)

// AuthHandler предоставляет HTTP слой для регистрации и логина.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register обрабатывает POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	}, meta)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":   result.User,
		"tokens": result.TokenPair,
	})
}

// Login обрабатывает POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Password) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "пароль обязателен"})
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, meta)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   result.User,
		"tokens": result.TokenPair,
	})
}

// Refresh обрабатывает POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	meta := map[string]string{
		"user_agent": c.GetHeader("User-Agent"),
		"ip":         c.ClientIP(),
	}

	result, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, meta)
	if err != nil {
		if service.IsValidation(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": result.TokenPair})
}

// Logout обрабатывает POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "сессия завершена"})
}
