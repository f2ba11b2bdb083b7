package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/http/handlers/common"
	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/service"
)

// AdminHandler предоставляет панель модерации.
type AdminHandler struct {
	moderation *service.ModerationService
	promocodes *service.PromocodeService
}

// NewAdminHandler создаёт хэндлер.
func NewAdminHandler(moderation *service.ModerationService, promocodes *service.PromocodeService) *AdminHandler {
	return &AdminHandler{moderation: moderation, promocodes: promocodes}
}

// Dashboard GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.moderation.Dashboard(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// ListReports GET /admin/reports?status=pending|resolved|dismissed|all
func (h *AdminHandler) ListReports(c *gin.Context) {
	filter := models.ReportFilter(c.DefaultQuery("status", string(models.ReportFilterAll)))
	reports, err := h.moderation.ListReports(c.Request.Context(), filter)
	if err != nil {
		if service.IsValidation(err) {
			common.RespondBadRequest(c, err.Error())
			return
		}
		c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, gin.H{"reports": reports})
}

// UpdateReportStatus PATCH /admin/reports/:id
func (h *AdminHandler) UpdateReportStatus(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	report, err := h.moderation.UpdateReportStatus(c.Request.Context(), id, models.ReportStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrReportNotFound):
			common.RespondNotFound(c, "жалоба не найдена")
		case service.IsValidation(err):
			common.RespondBadRequest(c, err.Error())
		default:
			c.Error(err)
		}
		return
	}

	h.moderation.InvalidateDashboard()
	c.JSON(http.StatusOK, report)
}

// UpdatePromocode PATCH /admin/promocodes/:id
func (h *AdminHandler) UpdatePromocode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var req promocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var expiry *time.Time
	if expiry, err = req.parseExpiry(); err != nil {
		common.RespondBadRequest(c, "неверный формат даты окончания")
		return
	}

	if _, err := h.promocodes.Update(c.Request.Context(), id, userID, true, req.toInput(expiry)); err != nil {
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

	// Панель модерации показывает email владельца, поэтому отдаём промокод с владельцем.
	promocode, err := h.promocodes.GetWithOwner(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	h.moderation.InvalidateDashboard()
	c.JSON(http.StatusOK, promocode)
}

// DeletePromocode DELETE /admin/promocodes/:id
func (h *AdminHandler) DeletePromocode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.promocodes.Delete(c.Request.Context(), id, userID, true); err != nil {
		if errors.Is(err, repository.ErrPromocodeNotFound) {
			common.RespondNotFound(c, "промокод не найден")
			return
		}
		c.Error(err)
		return
	}

	h.moderation.InvalidateDashboard()
	common.RespondSuccess(c, http.StatusOK, "промокод удалён", nil)
}
