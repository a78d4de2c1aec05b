package models

import (
	"time"
)

// Customer is the new-system owner of storage cases. LegacyAccountId carries
// the old Accounts.AccountID so migration runs can resolve identities and
// stay idempotent.
type Customer struct {
	ID              int       `gorm:"primary_key" json:"id"`
	TenantId        string    `gorm:"index;not null" json:"tenant_id"`
	Name            string    `gorm:"size:255;not null" json:"name"`
	Email           string    `gorm:"size:255" json:"email"`
	IsActive        *bool     `gorm:"not null;default:true" json:"is_active"`
	LegacyAccountId *int      `gorm:"index" json:"legacy_account_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
