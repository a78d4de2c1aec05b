package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thelllabs/winehaus-veritas-data-migration/config"
	"github.com/thelllabs/winehaus-veritas-data-migration/utils"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        uuid.UUID `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"index;size:100;not null" json:"name"`
	Email     string    `gorm:"size:255" json:"email"`
	Timezone  string    `gorm:"size:50" json:"timezone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func CreateTenant(ctx context.Context, name string, email string) (*Tenant, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("tenant name is required")
	}
	tenant := Tenant{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		IsActive: utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func GetTenantById(ctx context.Context, id string) (*Tenant, error) {
	tenantId, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("invalid tenant id")
	}
	var tenant Tenant
	db := config.GetDB()
	if err := db.WithContext(ctx).Where("id = ?", tenantId).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &tenant, nil
}
