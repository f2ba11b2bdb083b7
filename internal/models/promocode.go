package models

import (
	"time"

	"github.com/google/uuid"
)

// Promocode описывает опубликованный промокод.
type Promocode struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	OwnerID      uuid.UUID  `db:"owner_id" json:"owner_id"`
	ServiceName  string     `db:"service_name" json:"service_name"`
	Code         string     `db:"code" json:"code"`
	Description  string     `db:"description" json:"description"`
	Discount     string     `db:"discount" json:"discount"`
	CategorySlug string     `db:"category_slug" json:"category_slug"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Uses         int        `db:"uses" json:"uses"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// PromocodeWithOwner дополняет промокод email автора для админки.
type PromocodeWithOwner struct {
	Promocode
	OwnerEmail string `db:"owner_email" json:"owner_email"`
}
