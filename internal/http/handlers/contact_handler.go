package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/http/handlers/common"
	"github.com/promoshare/promocode-backend/internal/mailer"
	"github.com/promoshare/promocode-backend/internal/validation"
)

// ContactHandler принимает сообщения формы обратной связи.
type ContactHandler struct {
	mailer mailer.Mailer
}

// NewContactHandler создаёт хэндлер.
func NewContactHandler(m mailer.Mailer) *ContactHandler {
	return &ContactHandler{mailer: m}
}

// SendMessage POST /contact
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		common.RespondBadRequest(c, "текст сообщения обязателен")
		return
	}

	msg := mailer.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := h.mailer.SendContact(c.Request.Context(), msg); err != nil {
		common.RespondInternalError(c, "не удалось отправить сообщение")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "сообщение отправлено"})
}
