package models

import (
	"errors"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// OperationGroup groups the case operations produced by one legacy activity.
// Exactly one group is created per reconciled activity; LegacyActivityId is
// unique per tenant so a re-run detects an already-migrated activity instead
// of minting a duplicate group.
type OperationGroup struct {
	ID               int             `gorm:"primary_key" json:"id"`
	TenantId         string          `gorm:"index;not null;uniqueIndex:uix_operation_groups_tenant_legacy" json:"tenant_id"`
	CustomerId       int             `gorm:"index;not null" json:"customer_id"`
	Status           OperationStatus `gorm:"type:enum('Processed','OnHold','Confirmed');not null" json:"status"`
	LegacyActivityId *int            `gorm:"uniqueIndex:uix_operation_groups_tenant_legacy" json:"legacy_activity_id"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// CaseOperation is one case's participation in an operation group: a deposit
// leg or a withdrawal leg. For deposit/withdrawal activities at most one row
// exists per (group, case); transfer legs are always freshly created.
type CaseOperation struct {
	ID        int             `gorm:"primary_key" json:"id"`
	TenantId  string          `gorm:"index;not null" json:"tenant_id"`
	GroupId   int             `gorm:"index;not null" json:"group_id"`
	CaseId    int             `gorm:"index;not null" json:"case_id"`
	Kind      OperationKind   `gorm:"type:enum('Deposit','Withdrawal');not null" json:"kind"`
	Status    OperationStatus `gorm:"type:enum('Processed','OnHold','Confirmed');not null" json:"status"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
// The unique index on (tenant_id, legacy_activity_id) is the backstop when two
// operators run the tool at once; the offending insert is treated as
// already-migrated, not as a failure.
func IsDuplicateKey(err error) bool {
	var myErr *mysqlDriver.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

// FindOperationGroupByLegacyActivity returns the group stamped with the given
// legacy activity id, or (nil, nil) when the activity has not been migrated.
func FindOperationGroupByLegacyActivity(tx *gorm.DB, tenantId string, legacyActivityId int) (*OperationGroup, error) {
	var group OperationGroup
	err := tx.
		Where("tenant_id = ? AND legacy_activity_id = ?", tenantId, legacyActivityId).
		First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// FirstOrCreateCaseOperation finds the operation for (group, case) or creates
// one with the given kind and status. SELECT-then-INSERT is fine here: the
// migration is single-threaded, there is no concurrent writer to race.
func FirstOrCreateCaseOperation(tx *gorm.DB, tenantId string, groupId int, caseId int, kind OperationKind, status OperationStatus) (*CaseOperation, bool, error) {
	isNew := false
	op := CaseOperation{
		TenantId: tenantId,
		GroupId:  groupId,
		CaseId:   caseId,
		Kind:     kind,
		Status:   status,
	}
	result := tx.
		Where("tenant_id = ? AND group_id = ? AND case_id = ?", tenantId, groupId, caseId).
		FirstOrCreate(&op)
	if result.Error != nil {
		return nil, isNew, result.Error
	}
	if result.RowsAffected == 1 {
		isNew = true
	}
	return &op, isNew, nil
}

// CreateCaseOperation always inserts a fresh row. Transfer legs use this:
// each transfer line touches two distinct cases and gets its own pair of
// operations, no find-or-reuse.
func CreateCaseOperation(tx *gorm.DB, tenantId string, groupId int, caseId int, kind OperationKind, status OperationStatus) (*CaseOperation, error) {
	op := CaseOperation{
		TenantId: tenantId,
		GroupId:  groupId,
		CaseId:   caseId,
		Kind:     kind,
		Status:   status,
	}
	if err := tx.Create(&op).Error; err != nil {
		return nil, err
	}
	return &op, nil
}
