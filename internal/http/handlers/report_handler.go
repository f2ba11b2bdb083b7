package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/promoshare/promocode-backend/internal/http/handlers/common"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/service"
)

// ReportHandler принимает жалобы пользователей на промокоды.
type ReportHandler struct {
	svc *service.ModerationService
}

// NewReportHandler создаёт хэндлер.
func NewReportHandler(s *service.ModerationService) *ReportHandler {
	return &ReportHandler{svc: s}
}

// CreateReport POST /reports
func (h *ReportHandler) CreateReport(c *gin.Context) {
	if _, err := common.CurrentUserID(c); err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req struct {
		PromocodeID string `json:"promocode_id" binding:"required,uuid"`
		Reason      string `json:"reason" binding:"required"`
	}
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	promocodeID, _ := uuid.Parse(req.PromocodeID)
	report, err := h.svc.CreateReport(c.Request.Context(), promocodeID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPromocodeNotFound):
			common.RespondNotFound(c, "промокод не найден")
		case service.IsValidation(err):
			common.RespondBadRequest(c, err.Error())
		default:
			c.Error(err)
		}
		return
	}
	c.JSON(http.StatusCreated, report)
}
