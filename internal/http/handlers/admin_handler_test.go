package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/promoshare/promocode-backend/internal/http/middleware"
	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/service"
)

func newAdminTestRouter(repo *stubPromocodeRepo, adminID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, adminID)
		c.Set(middleware.ContextIsAdminKey, true)
		c.Next()
	})
	moderation := service.NewModerationService(nil, nil, nil, service.NewCacheService())
	promocodes := service.NewPromocodeService(repo, nil)
	handler := NewAdminHandler(moderation, promocodes)
	r.PATCH("/admin/promocodes/:id", handler.UpdatePromocode)
	return r
}

// stubReportRepo подменяет хранилище жалоб в тестах хэндлеров.
type stubReportRepo struct {
	listByFilter func(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error)
}

func (s *stubReportRepo) Create(ctx context.Context, report *models.Report) error {
	return nil
}

func (s *stubReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	return nil, nil
}

func (s *stubReportRepo) ListByFilter(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error) {
	return s.listByFilter(ctx, filter)
}

func (s *stubReportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	return nil, nil
}

func TestAdminHandler_ListReports_StatusFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var gotFilter models.ReportFilter
	reports := &stubReportRepo{
		listByFilter: func(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error) {
			gotFilter = filter
			return []models.ReportWithPromocode{}, nil
		},
	}
	moderation := service.NewModerationService(reports, nil, nil, service.NewCacheService())
	handler := NewAdminHandler(moderation, nil)

	r := gin.New()
	r.GET("/admin/reports", handler.ListReports)

	req, _ := http.NewRequest("GET", "/admin/reports?status=pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.ReportFilterPending, gotFilter)
}

func TestAdminHandler_ListReports_UnknownFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reports := &stubReportRepo{}
	moderation := service.NewModerationService(reports, nil, nil, service.NewCacheService())
	handler := NewAdminHandler(moderation, nil)

	r := gin.New()
	r.GET("/admin/reports", handler.ListReports)

	req, _ := http.NewRequest("GET", "/admin/reports?status=open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminHandler_UpdatePromocode_ReturnsOwnerEmail(t *testing.T) {
	id := uuid.New()
	ownerID := uuid.New()
	repo := &stubPromocodeRepo{
		getByID: func(ctx context.Context, gotID uuid.UUID) (*models.Promocode, error) {
			return &models.Promocode{ID: id, OwnerID: ownerID}, nil
		},
		update: func(ctx context.Context, promocode *models.Promocode) error {
			return nil
		},
		getByIDWithOwner: func(ctx context.Context, gotID uuid.UUID) (*models.PromocodeWithOwner, error) {
			return &models.PromocodeWithOwner{
				Promocode:  models.Promocode{ID: id, OwnerID: ownerID, ServiceName: "Netflix"},
				OwnerEmail: "owner@example.com",
			}, nil
		},
	}
	r := newAdminTestRouter(repo, uuid.New())

	req, _ := http.NewRequest("PATCH", "/admin/promocodes/"+id.String(), strings.NewReader(promocodePayload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"owner_email":"owner@example.com"`)
}
