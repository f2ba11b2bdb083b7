package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promoshare/promocode-backend/internal/catalog"
	"github.com/promoshare/promocode-backend/internal/dto"
	"github.com/promoshare/promocode-backend/internal/http/handlers/common"
	"github.com/promoshare/promocode-backend/internal/service"
)

// CatalogHandler отдаёт категории и публичный каталог промокодов.
type CatalogHandler struct {
	promocodes *service.PromocodeService
}

// NewCatalogHandler создаёт хэндлер.
func NewCatalogHandler(promocodes *service.PromocodeService) *CatalogHandler {
	return &CatalogHandler{promocodes: promocodes}
}

// ListCategories GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories})
}

// ListCategoryPromocodes GET /categories/:slug/promocodes?page=N
func (h *CatalogHandler) ListCategoryPromocodes(c *gin.Context) {
	slug := c.Param("slug")
	if _, ok := catalog.BySlug(slug); !ok {
		common.RespondNotFound(c, "категория не найдена")
		return
	}

	page := common.GetPage(c)
	result, err := h.promocodes.ListCategory(c.Request.Context(), slug, page)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": result.Items,
		"pagination": dto.Pagination{
			Total:      result.Total,
			Page:       result.Page,
			PageSize:   result.PageSize,
			TotalPages: result.TotalPages,
		},
	})
}
