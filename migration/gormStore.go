package migration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
	"gorm.io/gorm"
)

// GormTargetStore writes to the target database through GORM. All queries run
// with the caller's context so the tenant guard scopes reads; inserts stamp
// the tenant id explicitly.
type GormTargetStore struct {
	db       *gorm.DB
	tenantId string
}

func NewGormTargetStore(db *gorm.DB, tenantId string) *GormTargetStore {
	return &GormTargetStore{db: db, tenantId: tenantId}
}

func (s *GormTargetStore) LookupByLegacyId(ctx context.Context, kind IdentityKind, legacyId int) (int, bool, error) {
	tx := s.db.WithContext(ctx)
	switch kind {
	case IdentityCustomer:
		return models.LookupIdByLegacyId[models.Customer](tx, "legacy_account_id", legacyId)
	case IdentityCase:
		return models.LookupIdByLegacyId[models.StorageCase](tx, "legacy_case_id", legacyId)
	case IdentityWine:
		return models.LookupIdByLegacyId[models.Wine](tx, "legacy_wine_id", legacyId)
	case IdentityFormat:
		return models.LookupIdByLegacyId[models.BottleFormat](tx, "legacy_format_id", legacyId)
	case IdentityVintage:
		return models.LookupIdByLegacyId[models.BottleVintage](tx, "legacy_vintage_id", legacyId)
	}
	return 0, false, fmt.Errorf("unknown identity kind %q", kind)
}

func (s *GormTargetStore) CreatePlaceholderWine(ctx context.Context, legacyWineId int) (int, error) {
	wine, err := models.CreatePlaceholderWine(s.db.WithContext(ctx), s.tenantId, legacyWineId)
	if err != nil {
		return 0, err
	}
	return wine.ID, nil
}

func (s *GormTargetStore) FindGroupByLegacyActivity(ctx context.Context, legacyActivityId int) (int, bool, error) {
	group, err := models.FindOperationGroupByLegacyActivity(s.db.WithContext(ctx), s.tenantId, legacyActivityId)
	if err != nil {
		return 0, false, err
	}
	if group == nil {
		return 0, false, nil
	}
	return group.ID, true, nil
}

func (s *GormTargetStore) InsertOperationGroup(ctx context.Context, customerId int, status models.OperationStatus, legacyActivityId int) (int, error) {
	group := models.OperationGroup{
		TenantId:         s.tenantId,
		CustomerId:       customerId,
		Status:           status,
		LegacyActivityId: &legacyActivityId,
	}
	if err := s.db.WithContext(ctx).Create(&group).Error; err != nil {
		return 0, err
	}
	return group.ID, nil
}

func (s *GormTargetStore) FirstOrCreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (int, bool, error) {
	op, isNew, err := models.FirstOrCreateCaseOperation(s.db.WithContext(ctx), s.tenantId, groupId, caseId, kind, status)
	if err != nil {
		return 0, false, err
	}
	return op.ID, isNew, nil
}

func (s *GormTargetStore) CreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (int, error) {
	op, err := models.CreateCaseOperation(s.db.WithContext(ctx), s.tenantId, groupId, caseId, kind, status)
	if err != nil {
		return 0, err
	}
	return op.ID, nil
}

func (s *GormTargetStore) PostInventory(ctx context.Context, operationId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error {
	_, _, err := models.PostInventoryLedgerEntry(s.db.WithContext(ctx), s.tenantId, operationId, wineId, bottleFormatId, bottleVintageId, amount)
	return err
}

func (s *GormTargetStore) UpsertSnapshot(ctx context.Context, caseId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error {
	_, _, err := models.UpsertSnapshotLedgerEntry(s.db.WithContext(ctx), s.tenantId, caseId, wineId, bottleFormatId, bottleVintageId, amount)
	return err
}
