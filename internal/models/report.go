package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus — сохраняемый статус жалобы.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// ValidReportStatuses список валидных сохраняемых статусов.
var ValidReportStatuses = map[ReportStatus]struct{}{
	ReportStatusPending:   {},
	ReportStatusResolved:  {},
	ReportStatusDismissed: {},
}

// Valid сообщает, можно ли сохранить такой статус.
func (s ReportStatus) Valid() bool {
	_, ok := ValidReportStatuses[s]
	return ok
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Разрешено: pending -> resolved | dismissed и возврат в pending на повторный разбор.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	if !next.Valid() {
		return false
	}
	switch s {
	case ReportStatusPending:
		return next == ReportStatusResolved || next == ReportStatusDismissed
	case ReportStatusResolved, ReportStatusDismissed:
		return next == ReportStatusPending
	}
	return false
}

// ReportFilter — фильтр выборки жалоб. Отдельный тип от ReportStatus:
// "all" существует только как фильтр и никогда не сохраняется как статус.
type ReportFilter string

const (
	ReportFilterPending   ReportFilter = "pending"
	ReportFilterResolved  ReportFilter = "resolved"
	ReportFilterDismissed ReportFilter = "dismissed"
	ReportFilterAll       ReportFilter = "all"
)

// Valid сообщает, допустим ли фильтр.
func (f ReportFilter) Valid() bool {
	switch f {
	case ReportFilterPending, ReportFilterResolved, ReportFilterDismissed, ReportFilterAll:
		return true
	}
	return false
}

// Report описывает жалобу пользователя на промокод.
// promocode_id — слабая ссылка: промокод может быть уже удалён.
type Report struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	PromocodeID uuid.UUID    `db:"promocode_id" json:"promocode_id"`
	Reason      string       `db:"reason" json:"reason"`
	Status      ReportStatus `db:"status" json:"status"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
}

// ReportedPromocode — краткая сводка промокода в выдаче жалоб.
type ReportedPromocode struct {
	ServiceName  string `json:"service_name"`
	Code         string `json:"code"`
	Discount     string `json:"discount"`
	CategorySlug string `json:"category_slug"`
}

// ReportWithPromocode дополняет жалобу сводкой промокода.
// Promocode == nil означает, что промокод уже удалён.
type ReportWithPromocode struct {
	Report
	Promocode *ReportedPromocode `json:"promocode,omitempty"`
}
