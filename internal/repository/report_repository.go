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

// ErrReportNotFound возвращается, когда жалоба не найдена.
var ErrReportNotFound = errors.New("report not found")

// ReportRepository отвечает за работу с таблицей reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository создаёт экземпляр репозитория.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create сохраняет новую жалобу. Статус всегда pending.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (promocode_id, reason)
		VALUES ($1, $2)
		RETURNING id, status, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, report.PromocodeID, report.Reason).
		Scan(&report.ID, &report.Status, &report.CreatedAt); err != nil {
		return fmt.Errorf("report repository: create %w", err)
	}

	return nil
}

// GetByID возвращает жалобу по идентификатору.
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	var report models.Report
	query := `SELECT id, promocode_id, reason, status, created_at FROM reports WHERE id = $1`
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("report repository: get by id %w", err)
	}

	return &report, nil
}

// reportRow — строка выборки жалоб с LEFT JOIN на promocodes.
// Поля промокода nullable: промокод мог быть удалён после подачи жалобы.
type reportRow struct {
	models.Report
	ServiceName  *string `db:"service_name"`
	Code         *string `db:"code"`
	Discount     *string `db:"discount"`
	CategorySlug *string `db:"category_slug"`
}

// ListByFilter возвращает жалобы по фильтру статуса, новые первыми.
// ReportFilterAll не накладывает условий.
func (r *ReportRepository) ListByFilter(ctx context.Context, filter models.ReportFilter) ([]models.ReportWithPromocode, error) {
	query := `
		SELECT r.id, r.promocode_id, r.reason, r.status, r.created_at,
			p.service_name, p.code, p.discount, p.category_slug
		FROM reports r
		LEFT JOIN promocodes p ON p.id = r.promocode_id
	`
	args := []interface{}{}
	if filter != models.ReportFilterAll {
		query += ` WHERE r.status = $1`
		args = append(args, string(filter))
	}
	query += ` ORDER BY r.created_at DESC`

	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("report repository: list by filter %w", err)
	}

	reports := make([]models.ReportWithPromocode, 0, len(rows))
	for _, row := range rows {
		item := models.ReportWithPromocode{Report: row.Report}
		if row.ServiceName != nil {
			item.Promocode = &models.ReportedPromocode{
				ServiceName:  *row.ServiceName,
				Code:         derefString(row.Code),
				Discount:     derefString(row.Discount),
				CategorySlug: derefString(row.CategorySlug),
			}
		}
		reports = append(reports, item)
	}

	return reports, nil
}

// UpdateStatus меняет статус жалобы и возвращает обновлённую запись.
func (r *ReportRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ReportStatus) (*models.Report, error) {
	var report models.Report
	query := `
		UPDATE reports SET status = $2 WHERE id = $1
		RETURNING id, promocode_id, reason, status, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, id, string(status)).StructScan(&report)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("report repository: update status %w", err)
	}

	return &report, nil
}

// ResolvePendingByPromocode закрывает все pending жалобы на промокод.
// Вызывается при удалении промокода: удаление и есть принятая мера.
func (r *ReportRepository) ResolvePendingByPromocode(ctx context.Context, promocodeID uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE reports SET status = $2 WHERE promocode_id = $1 AND status = $3
	`, promocodeID, string(models.ReportStatusResolved), string(models.ReportStatusPending))
	if err != nil {
		return 0, fmt.Errorf("report repository: resolve pending %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("report repository: resolve pending rows affected %w", err)
	}

	return affected, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
