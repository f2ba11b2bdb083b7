package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/repository"
)

type mockReportRepo struct {
	mock.Mock
}

func (m *mockReportRepo) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	if args.Error(0) == nil {
		report.ID = uuid.New()
		report.Status = models.ReportStatusPending
	}
	return args.Error(0)
}

func (m *mockReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *mockReportRepo) ListByFilter(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.ReportWithPromocode), args.Error(1)
}

func (m *mockReportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

type mockPromocodeChecker struct {
	mock.Mock
}

func (m *mockPromocodeChecker) GetByID(ctx context.Context, id uuid.UUID) (*models.Promocode, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Promocode), args.Error(1)
}

type mockDashboardPromocodes struct {
	mock.Mock
}

func (m *mockDashboardPromocodes) ListAllWithOwner(ctx context.Context) ([]models.PromocodeWithOwner, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PromocodeWithOwner), args.Error(1)
}

func newModerationService(reports *mockReportRepo, checker *mockPromocodeChecker, dashboard *mockDashboardPromocodes) *ModerationService {
	return NewModerationService(reports, checker, dashboard, NewCacheService())
}

func TestModerationService_CreateReport_Success(t *testing.T) {
	reports := new(mockReportRepo)
	checker := new(mockPromocodeChecker)
	svc := newModerationService(reports, checker, nil)
	ctx := context.Background()

	promocodeID := uuid.New()
	checker.On("GetByID", ctx, promocodeID).Return(&models.Promocode{ID: promocodeID}, nil)
	reports.On("Create", ctx, mock.AnythingOfType("*models.Report")).Return(nil)

	report, err := svc.CreateReport(ctx, promocodeID, "код не работает")
	assert.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	reports.AssertExpectations(t)
}

func TestModerationService_CreateReport_EmptyReason(t *testing.T) {
	reports := new(mockReportRepo)
	checker := new(mockPromocodeChecker)
	svc := newModerationService(reports, checker, nil)

	_, err := svc.CreateReport(context.Background(), uuid.New(), "   ")
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
	reports.AssertNotCalled(t, "Create")
}

func TestModerationService_CreateReport_PromocodeMissing(t *testing.T) {
	reports := new(mockReportRepo)
	checker := new(mockPromocodeChecker)
	svc := newModerationService(reports, checker, nil)
	ctx := context.Background()

	promocodeID := uuid.New()
	checker.On("GetByID", ctx, promocodeID).Return(nil, repository.ErrPromocodeNotFound)

	_, err := svc.CreateReport(ctx, promocodeID, "код не работает")
	assert.ErrorIs(t, err, repository.ErrPromocodeNotFound)
	reports.AssertNotCalled(t, "Create")
}

func TestModerationService_UpdateReportStatus_Transitions(t *testing.T) {
	reports := new(mockReportRepo)
	svc := newModerationService(reports, new(mockPromocodeChecker), nil)
	ctx := context.Background()

	id := uuid.New()
	pending := &models.Report{ID: id, Status: models.ReportStatusPending}
	dismissed := &models.Report{ID: id, Status: models.ReportStatusDismissed}

	reports.On("GetByID", ctx, id).Return(pending, nil).Once()
	reports.On("UpdateStatus", ctx, id, models.ReportStatusDismissed).Return(dismissed, nil).Once()

	updated, err := svc.UpdateReportStatus(ctx, id, models.ReportStatusDismissed)
	assert.NoError(t, err)
	assert.Equal(t, models.ReportStatusDismissed, updated.Status)

	// Отклонённую жалобу можно только вернуть в работу.
	reports.On("GetByID", ctx, id).Return(dismissed, nil).Once()
	_, err = svc.UpdateReportStatus(ctx, id, models.ReportStatusResolved)
	assert.Error(t, err)

	reports.On("GetByID", ctx, id).Return(dismissed, nil).Once()
	reports.On("UpdateStatus", ctx, id, models.ReportStatusPending).Return(pending, nil).Once()
	reopened, err := svc.UpdateReportStatus(ctx, id, models.ReportStatusPending)
	assert.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, reopened.Status)
}

func TestModerationService_UpdateReportStatus_InvalidStatus(t *testing.T) {
	reports := new(mockReportRepo)
	svc := newModerationService(reports, new(mockPromocodeChecker), nil)

	_, err := svc.UpdateReportStatus(context.Background(), uuid.New(), models.ReportStatus("all"))
	assert.Error(t, err)
	assert.True(t, IsValidation(err))
	reports.AssertNotCalled(t, "GetByID")
}

func TestModerationService_ListReports_InvalidFilter(t *testing.T) {
	reports := new(mockReportRepo)
	svc := newModerationService(reports, new(mockPromocodeChecker), nil)

	_, err := svc.ListReports(context.Background(), models.ReportFilter("open"))
	assert.Error(t, err)
	reports.AssertNotCalled(t, "ListByFilter")
}

func TestModerationService_Dashboard_Cached(t *testing.T) {
	reports := new(mockReportRepo)
	dashboard := new(mockDashboardPromocodes)
	svc := newModerationService(reports, new(mockPromocodeChecker), dashboard)
	ctx := context.Background()

	dashboard.On("ListAllWithOwner", ctx).Return([]models.PromocodeWithOwner{}, nil).Once()
	reports.On("ListByFilter", ctx, models.ReportFilterAll).Return([]models.ReportWithPromocode{}, nil).Once()

	first, err := svc.Dashboard(ctx)
	assert.NoError(t, err)

	// Повторный вызов обслуживается из кэша.
	second, err := svc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.Same(t, first, second)
	dashboard.AssertExpectations(t)
	reports.AssertExpectations(t)
}

func TestModerationService_CreateReport_InvalidatesDashboard(t *testing.T) {
	reports := new(mockReportRepo)
	checker := new(mockPromocodeChecker)
	dashboard := new(mockDashboardPromocodes)
	svc := newModerationService(reports, checker, dashboard)
	ctx := context.Background()

	dashboard.On("ListAllWithOwner", ctx).Return([]models.PromocodeWithOwner{}, nil).Twice()
	reports.On("ListByFilter", ctx, models.ReportFilterAll).Return([]models.ReportWithPromocode{}, nil).Twice()

	first, err := svc.Dashboard(ctx)
	assert.NoError(t, err)

	promocodeID := uuid.New()
	checker.On("GetByID", ctx, promocodeID).Return(&models.Promocode{ID: promocodeID}, nil)
	reports.On("Create", ctx, mock.AnythingOfType("*models.Report")).Return(nil)

	_, err = svc.CreateReport(ctx, promocodeID, "код не работает")
	assert.NoError(t, err)

	// Новая жалоба сбрасывает кэш, панель собирается заново.
	second, err := svc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.NotSame(t, first, second)
	dashboard.AssertExpectations(t)
	reports.AssertExpectations(t)
}
