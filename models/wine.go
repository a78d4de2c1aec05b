package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Wine struct {
	ID            int       `gorm:"primary_key" json:"id"`
	TenantId      string    `gorm:"index;not null" json:"tenant_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Producer      string    `gorm:"size:255" json:"producer"`
	Country       string    `gorm:"size:100" json:"country"`
	LegacyWineId  *int      `gorm:"index" json:"legacy_wine_id"`
	IsPlaceholder *bool     `gorm:"not null;default:false" json:"is_placeholder"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// CreatePlaceholderWine inserts a minimal wine record for a legacy wine id
// with no catalog counterpart, so reconciliation can keep the line instead of
// dropping it. Merging placeholders with real catalog entries is follow-up
// housekeeping, not this toolkit's job.
func CreatePlaceholderWine(tx *gorm.DB, tenantId string, legacyWineId int) (*Wine, error) {
	isPlaceholder := true
	wine := Wine{
		TenantId:      tenantId,
		Name:          fmt.Sprintf("Unmatched legacy wine #%d", legacyWineId),
		LegacyWineId:  &legacyWineId,
		IsPlaceholder: &isPlaceholder,
	}
	if err := tx.Create(&wine).Error; err != nil {
		return nil, err
	}
	return &wine, nil
}
