package models

import (
	"time"
)

// StorageCase is a physical case held for a customer.
type StorageCase struct {
	ID           int       `gorm:"primary_key" json:"id"`
	TenantId     string    `gorm:"index;not null" json:"tenant_id"`
	CustomerId   int       `gorm:"index;not null" json:"customer_id"`
	Label        string    `gorm:"size:100" json:"label"`
	LegacyCaseId *int      `gorm:"index" json:"legacy_case_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
