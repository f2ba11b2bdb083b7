package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promoshare/promocode-backend/internal/models"
)

// ErrPromocodeNotFound возвращается, когда запись промокода не найдена.
var ErrPromocodeNotFound = errors.New("promocode not found")

// PromocodeRepository отвечает за работу с таблицей promocodes.
type PromocodeRepository struct {
	db *sqlx.DB
}

// NewPromocodeRepository создаёт экземпляр репозитория.
func NewPromocodeRepository(db *sqlx.DB) *PromocodeRepository {
	return &PromocodeRepository{db: db}
}

// Create сохраняет новый промокод и заполняет серверные поля.
func (r *PromocodeRepository) Create(ctx context.Context, promo *models.Promocode) error {
	query := `
		INSERT INTO promocodes (owner_id, service_name, code, description, discount, category_slug, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uses, created_at
	`

	if err := r.db.QueryRowxContext(
		ctx, query,
		promo.OwnerID, promo.ServiceName, promo.Code, promo.Description,
		promo.Discount, promo.CategorySlug, promo.ExpiryDate,
	).Scan(&promo.ID, &promo.Uses, &promo.CreatedAt); err != nil {
		return fmt.Errorf("promocode repository: create %w", err)
	}

	return nil
}

// GetByID возвращает промокод по идентификатору.
func (r *PromocodeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Promocode, error) {
	var promo models.Promocode
	query := `
		SELECT id, owner_id, service_name, code, description, discount, category_slug, expiry_date, uses, created_at
		FROM promocodes
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &promo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromocodeNotFound
		}
		return nil, fmt.Errorf("promocode repository: get by id %w", err)
	}

	return &promo, nil
}

// ListByCategory возвращает страницу промокодов категории и общее количество.
// Сортировка: новые первыми.
func (r *PromocodeRepository) ListByCategory(ctx context.Context, slug string, limit, offset int) ([]models.Promocode, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM promocodes WHERE category_slug = $1`, slug); err != nil {
		return nil, 0, fmt.Errorf("promocode repository: count by category %w", err)
	}

	var promos []models.Promocode
	query := `
		SELECT id, owner_id, service_name, code, description, discount, category_slug, expiry_date, uses, created_at
		FROM promocodes
		WHERE category_slug = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &promos, query, slug, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("promocode repository: list by category %w", err)
	}

	return promos, total, nil
}

// ListByOwner возвращает все промокоды пользователя, новые первыми.
func (r *PromocodeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Promocode, error) {
	var promos []models.Promocode
	query := `
		SELECT id, owner_id, service_name, code, description, discount, category_slug, expiry_date, uses, created_at
		FROM promocodes
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`
	if err := r.db.SelectContext(ctx, &promos, query, ownerID); err != nil {
		return nil, fmt.Errorf("promocode repository: list by owner %w", err)
	}

	return promos, nil
}

// ListAllWithOwner возвращает все промокоды вместе с email автора (для админки).
func (r *PromocodeRepository) ListAllWithOwner(ctx context.Context) ([]models.PromocodeWithOwner, error) {
	var promos []models.PromocodeWithOwner
	query := `
		SELECT p.id, p.owner_id, p.service_name, p.code, p.description, p.discount,
			p.category_slug, p.expiry_date, p.uses, p.created_at,
			u.email AS owner_email
		FROM promocodes p
		JOIN users u ON u.id = p.owner_id
		ORDER BY p.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &promos, query); err != nil {
		return nil, fmt.Errorf("promocode repository: list all %w", err)
	}

	return promos, nil
}

// GetByIDWithOwner возвращает промокод вместе с email автора.
func (r *PromocodeRepository) GetByIDWithOwner(ctx context.Context, id uuid.UUID) (*models.PromocodeWithOwner, error) {
	var promo models.PromocodeWithOwner
	query := `
		SELECT p.id, p.owner_id, p.service_name, p.code, p.description, p.discount,
			p.category_slug, p.expiry_date, p.uses, p.created_at,
			u.email AS owner_email
		FROM promocodes p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1
	`
	if err := r.db.GetContext(ctx, &promo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPromocodeNotFound
		}
		return nil, fmt.Errorf("promocode repository: get with owner %w", err)
	}

	return &promo, nil
}

// Update перезаписывает редактируемые поля промокода.
// owner_id, uses и created_at не меняются никогда.
func (r *PromocodeRepository) Update(ctx context.Context, promo *models.Promocode) error {
	query := `
		UPDATE promocodes
		SET service_name = $2, code = $3, description = $4, discount = $5,
			category_slug = $6, expiry_date = $7
		WHERE id = $1
	`
	res, err := r.db.ExecContext(
		ctx, query,
		promo.ID, promo.ServiceName, promo.Code, promo.Description,
		promo.Discount, promo.CategorySlug, promo.ExpiryDate,
	)
	if err != nil {
		return fmt.Errorf("promocode repository: update %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promocode repository: update rows affected %w", err)
	}
	if affected == 0 {
		return ErrPromocodeNotFound
	}

	return nil
}

// Delete удаляет промокод. Удаление терминально, tombstone не хранится.
func (r *PromocodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promocodes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("promocode repository: delete %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("promocode repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrPromocodeNotFound
	}

	return nil
}

// IncrementUses увеличивает счётчик использований на единицу.
// Счётчик информационный, версионирование не применяется.
func (r *PromocodeRepository) IncrementUses(ctx context.Context, id uuid.UUID) (int, error) {
	var uses int
	err := r.db.QueryRowxContext(ctx, `
		UPDATE promocodes SET uses = uses + 1 WHERE id = $1 RETURNING uses
	`, id).Scan(&uses)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrPromocodeNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("promocode repository: increment uses %w", err)
	}

	return uses, nil
}
