package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/promoshare/promocode-backend/internal/catalog"
	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/validation"
)

// PageSize задаёт размер страницы выдачи промокодов.
const PageSize = 9

// PromocodeRepository описывает зависимости PromocodeService от слоя хранилища.
type PromocodeRepository interface {
	Create(ctx context.Context, promocode *models.Promocode) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Promocode, error)
	GetByIDWithOwner(ctx context.Context, id uuid.UUID) (*models.PromocodeWithOwner, error)
	ListByCategory(ctx context.Context, slug string, limit, offset int) ([]models.Promocode, int, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Promocode, error)
	Update(ctx context.Context, promocode *models.Promocode) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementUses(ctx context.Context, id uuid.UUID) (int, error)
}

// ReportResolver закрывает открытые жалобы при удалении промокода.
type ReportResolver interface {
	ResolvePendingByPromocode(ctx context.Context, promocodeID uuid.UUID) (int64, error)
}

// PromocodeService реализует бизнес-логику каталога промокодов.
type PromocodeService struct {
	repo    PromocodeRepository
	reports ReportResolver
}

// PromocodeInput содержит данные промокода от пользователя.
type PromocodeInput struct {
	ServiceName string
	Code        string
	Description string
	Discount    string
	Category    string
	ExpiryDate  *time.Time
}

// PromocodePage содержит страницу промокодов с данными пагинации.
type PromocodePage struct {
	Items      []models.Promocode `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// NewPromocodeService создаёт сервис промокодов.
func NewPromocodeService(repo PromocodeRepository, reports ReportResolver) *PromocodeService {
	return &PromocodeService{repo: repo, reports: reports}
}

// Submit валидирует и сохраняет новый промокод.
func (s *PromocodeService) Submit(ctx context.Context, ownerID uuid.UUID, in PromocodeInput) (*models.Promocode, error) {
	slug, err := validation.ValidatePromocodeInput(validation.PromocodeInput{
		ServiceName: in.ServiceName,
		Code:        in.Code,
		Description: in.Description,
		Discount:    in.Discount,
		Category:    in.Category,
	})
	if err != nil {
		return nil, invalid("promocode service: %w", err)
	}

	promocode := &models.Promocode{
		OwnerID:      ownerID,
		ServiceName:  in.ServiceName,
		Code:         in.Code,
		Description:  in.Description,
		Discount:     in.Discount,
		CategorySlug: slug,
		ExpiryDate:   in.ExpiryDate,
	}
	if err := s.repo.Create(ctx, promocode); err != nil {
		return nil, err
	}
	return promocode, nil
}

// Get возвращает промокод по идентификатору.
func (s *PromocodeService) Get(ctx context.Context, id uuid.UUID) (*models.Promocode, error) {
	return s.repo.GetByID(ctx, id)
}

// GetWithOwner возвращает промокод вместе с email владельца для модерации.
func (s *PromocodeService) GetWithOwner(ctx context.Context, id uuid.UUID) (*models.PromocodeWithOwner, error) {
	return s.repo.GetByIDWithOwner(ctx, id)
}

// ListCategory возвращает страницу промокодов категории.
// Страницы нумеруются с единицы, значения меньше единицы приводятся к первой.
func (s *PromocodeService) ListCategory(ctx context.Context, slug string, page int) (*PromocodePage, error) {
	if !catalog.ValidSlug(slug) {
		return nil, invalid("promocode service: неизвестная категория: %s", slug)
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * PageSize
	items, total, err := s.repo.ListByCategory(ctx, slug, PageSize, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + PageSize - 1) / PageSize
	return &PromocodePage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   PageSize,
		TotalPages: totalPages,
	}, nil
}

// ListMine возвращает все промокоды пользователя.
func (s *PromocodeService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Promocode, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update изменяет промокод. Разрешено владельцу и администратору.
func (s *PromocodeService) Update(ctx context.Context, id, callerID uuid.UUID, isAdmin bool, in PromocodeInput) (*models.Promocode, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != callerID && !isAdmin {
		return nil, ErrForbidden
	}

	slug, err := validation.ValidatePromocodeInput(validation.PromocodeInput{
		ServiceName: in.ServiceName,
		Code:        in.Code,
		Description: in.Description,
		Discount:    in.Discount,
		Category:    in.Category,
	})
	if err != nil {
		return nil, invalid("promocode service: %w", err)
	}

	existing.ServiceName = in.ServiceName
	existing.Code = in.Code
	existing.Description = in.Description
	existing.Discount = in.Discount
	existing.CategorySlug = slug
	existing.ExpiryDate = in.ExpiryDate

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete удаляет промокод и закрывает его открытые жалобы.
// Разрешено владельцу и администратору.
func (s *PromocodeService) Delete(ctx context.Context, id, callerID uuid.UUID, isAdmin bool) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.OwnerID != callerID && !isAdmin {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.reports != nil {
		if _, err := s.reports.ResolvePendingByPromocode(ctx, id); err != nil {
			return fmt.Errorf("promocode service: не удалось закрыть жалобы: %w", err)
		}
	}
	return nil
}

// Copy увеличивает счётчик использований и возвращает новое значение.
func (s *PromocodeService) Copy(ctx context.Context, id uuid.UUID) (int, error) {
	return s.repo.IncrementUses(ctx, id)
}
