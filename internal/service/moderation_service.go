package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/validation"
)

const dashboardCacheTTL = 30 * time.Second

// ModerationNotifier доставляет события модерации подключённым администраторам.
type ModerationNotifier interface {
	BroadcastEvent(event string, data any) error
}

// ReportRepository описывает зависимости ModerationService от слоя хранилища.
type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListByFilter(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error)
}

// PromocodeChecker проверяет существование промокода перед созданием жалобы.
type PromocodeChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Promocode, error)
}

// DashboardPromocodes возвращает каталог промокодов с владельцами для панели администратора.
type DashboardPromocodes interface {
	ListAllWithOwner(ctx context.Context) ([]models.PromocodeWithOwner, error)
}

// ModerationService реализует жалобы и панель администратора.
type ModerationService struct {
	reports    ReportRepository
	promocodes PromocodeChecker
	dashboard  DashboardPromocodes
	cache      *CacheService
	notifier   ModerationNotifier
}

// Dashboard содержит сводку для панели администратора.
type Dashboard struct {
	Promocodes []models.PromocodeWithOwner  `json:"promocodes"`
	Reports    []models.ReportWithPromocode `json:"reports"`
}

// NewModerationService создаёт сервис модерации.
func NewModerationService(reports ReportRepository, promocodes PromocodeChecker, dashboard DashboardPromocodes, cache *CacheService) *ModerationService {
	return &ModerationService{
		reports:    reports,
		promocodes: promocodes,
		dashboard:  dashboard,
		cache:      cache,
	}
}

// SetNotifier подключает доставку событий модерации. Может быть nil.
func (s *ModerationService) SetNotifier(n ModerationNotifier) {
	s.notifier = n
}

// CreateReport создаёт жалобу на промокод. Новая жалоба всегда открыта.
func (s *ModerationService) CreateReport(ctx context.Context, promocodeID uuid.UUID, reason string) (*models.Report, error) {
	if err := validation.ValidateReason(reason); err != nil {
		return nil, invalid("moderation service: %w", err)
	}

	if _, err := s.promocodes.GetByID(ctx, promocodeID); err != nil {
		return nil, err
	}

	report := &models.Report{
		PromocodeID: promocodeID,
		Reason:      reason,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.InvalidateDashboard()
	s.broadcast("report_created", report)
	return report, nil
}

// ListReports возвращает жалобы по фильтру статуса.
func (s *ModerationService) ListReports(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error) {
	if !filter.Valid() {
		return nil, invalid("moderation service: неизвестный фильтр статуса: %s", filter)
	}
	return s.reports.ListByFilter(ctx, filter)
}

// UpdateReportStatus переводит жалобу в новый статус.
// Открытую жалобу можно закрыть или отклонить, закрытую — только вернуть в работу.
func (s *ModerationService) UpdateReportStatus(ctx context.Context, id uuid.UUID, next models.ReportStatus) (*models.Report, error) {
	if !next.Valid() {
		return nil, invalid("moderation service: неизвестный статус: %s", next)
	}

	current, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, invalid("moderation service: недопустимый переход статуса: %s -> %s", current.Status, next)
	}

	updated, err := s.reports.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}

	s.broadcast("report_updated", updated)
	return updated, nil
}

// Dashboard возвращает сводку каталога и открытых жалоб, закэшированную на короткое время.
func (s *ModerationService) Dashboard(ctx context.Context) (*Dashboard, error) {
	value, err := s.cache.GetOrSet(DashboardCacheKey(), dashboardCacheTTL, func() (interface{}, error) {
		promocodes, err := s.dashboard.ListAllWithOwner(ctx)
		if err != nil {
			return nil, err
		}
		reports, err := s.reports.ListByFilter(ctx, models.ReportFilterAll)
		if err != nil {
			return nil, err
		}
		return &Dashboard{Promocodes: promocodes, Reports: reports}, nil
	})
	if err != nil {
		return nil, err
	}
	return value.(*Dashboard), nil
}

// InvalidateDashboard сбрасывает кэш панели после изменений каталога и жалоб.
func (s *ModerationService) InvalidateDashboard() {
	s.cache.InvalidateByPrefix(adminCachePrefix)
}

func (s *ModerationService) broadcast(event string, data any) {
	if s.notifier == nil {
		return
	}
	_ = s.notifier.BroadcastEvent(event, data)
}
