package models

import (
	"time"
)

// BottleFormat is a bottle size (750ml, magnum, ...). Never auto-created by
// migration: a line whose format cannot be resolved is skipped.
type BottleFormat struct {
	ID             int       `gorm:"primary_key" json:"id"`
	TenantId       string    `gorm:"index;not null" json:"tenant_id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Milliliters    int       `json:"milliliters"`
	LegacyFormatId *int      `gorm:"index" json:"legacy_format_id"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BottleVintage is a vintage year. Same policy as BottleFormat: resolved or
// skipped, never auto-created.
type BottleVintage struct {
	ID              int       `gorm:"primary_key" json:"id"`
	TenantId        string    `gorm:"index;not null" json:"tenant_id"`
	Year            int       `gorm:"not null" json:"year"`
	LegacyVintageId *int      `gorm:"index" json:"legacy_vintage_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
