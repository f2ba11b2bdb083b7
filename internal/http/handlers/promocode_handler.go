package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/dto"
	"github.com/promoshare/promocode-backend/internal/http/handlers/common"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/service"
)

// PromocodeHandler предоставляет HTTP слой для промокодов.
type PromocodeHandler struct {
	svc *service.PromocodeService
}

// NewPromocodeHandler создаёт хэндлер.
func NewPromocodeHandler(svc *service.PromocodeService) *PromocodeHandler {
	return &PromocodeHandler{svc: svc}
}

type promocodeRequest struct {
	ServiceName string  `json:"service_name" binding:"required"`
	Code        string  `json:"code" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Discount    string  `json:"discount" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	ExpiryDate  *string `json:"expiry_date"`
}

func (r *promocodeRequest) parseExpiry() (*time.Time, error) {
	if r.ExpiryDate == nil || *r.ExpiryDate == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, *r.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (r *promocodeRequest) toInput(expiry *time.Time) service.PromocodeInput {
	return service.PromocodeInput{
		ServiceName: r.ServiceName,
		Code:        r.Code,
		Description: r.Description,
		Discount:    r.Discount,
		Category:    r.Category,
		ExpiryDate:  expiry,
	}
}

// CreatePromocode POST /promocodes
func (h *PromocodeHandler) CreatePromocode(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	var req promocodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	expiry, err := req.parseExpiry()
	if err != nil {
		common.RespondBadRequest(c, "неверный формат даты окончания")
		return
	}

	promocode, err := h.svc.Submit(c.Request.Context(), userID, req.toInput(expiry))
	if err != nil {
		if service.IsValidation(err) {
			common.RespondBadRequest(c, err.Error())
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, promocode)
}

// GetPromocode GET /promocodes/:id
func (h *PromocodeHandler) GetPromocode(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	promocode, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPromocodeNotFound) {
			common.RespondNotFound(c, "промокод не найден")
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, promocode)
}

// ListMyPromocodes GET /promocodes/my
func (h *PromocodeHandler) ListMyPromocodes(c *gin.Context) {
	userID, err := common.CurrentUserID(c)
	if err != nil {
		common.RespondUnauthorized(c, err.Error())
		return
	}

	promocodes, err := h.svc.ListMine(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, promocodes)
}

// UpdatePromocode PUT /promocodes/:id
func (h *PromocodeHandler) UpdatePromocode(c *gin.Context) {
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

	expiry, err := req.parseExpiry()
	if err != nil {
		common.RespondBadRequest(c, "неверный формат даты окончания")
		return
	}

	promocode, err := h.svc.Update(c.Request.Context(), id, userID, common.IsAdmin(c), req.toInput(expiry))
	if err != nil {
		h.respondMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, promocode)
}

// DeletePromocode DELETE /promocodes/:id
func (h *PromocodeHandler) DeletePromocode(c *gin.Context) {
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

	if err := h.svc.Delete(c.Request.Context(), id, userID, common.IsAdmin(c)); err != nil {
		h.respondMutationError(c, err)
		return
	}
	common.RespondSuccess(c, http.StatusOK, "промокод удалён", nil)
}

// CopyPromocode POST /promocodes/:id/copy
func (h *PromocodeHandler) CopyPromocode(c *gin.Context) {
	id, err := common.ParseUUIDParam(c, "id")
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	uses, err := h.svc.Copy(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPromocodeNotFound) {
			common.RespondNotFound(c, "промокод не найден")
			return
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.CopyResponse{Uses: uses})
}

func (h *PromocodeHandler) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrPromocodeNotFound):
		common.RespondNotFound(c, "промокод не найден")
	case errors.Is(err, service.ErrForbidden):
		common.RespondForbidden(c, "")
	case service.IsValidation(err):
		common.RespondBadRequest(c, err.Error())
	default:
		c.Error(err)
	}
}
