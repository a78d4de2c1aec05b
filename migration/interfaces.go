package migration

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/thelllabs/winehaus-veritas-data-migration/legacy"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
)

// IdentityKind names a legacy identifier family for resolution against the
// target store.
type IdentityKind string

const (
	IdentityCustomer IdentityKind = "customer"
	IdentityCase     IdentityKind = "case"
	IdentityWine     IdentityKind = "wine"
	IdentityFormat   IdentityKind = "bottle-format"
	IdentityVintage  IdentityKind = "bottle-vintage"
)

// Source is the legacy record source the reconciler walks. *legacy.Store is
// the production implementation; tests use an in-memory one.
type Source interface {
	Accounts(ctx context.Context) ([]legacy.Account, error)
	ConfirmedActivities(ctx context.Context, accountId int) ([]legacy.Activity, error)
	ActivityLines(ctx context.Context, activityId int) ([]legacy.ActivityLine, error)
	CaseDetail(ctx context.Context, caseDetailId int) (*legacy.CaseDetail, error)
	AllCaseDetails(ctx context.Context) ([]legacy.CaseDetail, error)
}

// TargetStore is the tenant-scoped sink the reconciler writes to.
type TargetStore interface {
	// LookupByLegacyId resolves a legacy identifier to a target id.
	// ok is false when no counterpart exists; never an error.
	LookupByLegacyId(ctx context.Context, kind IdentityKind, legacyId int) (id int, ok bool, err error)

	// CreatePlaceholderWine inserts a placeholder for a legacy wine id with
	// no catalog counterpart and returns its new id.
	CreatePlaceholderWine(ctx context.Context, legacyWineId int) (int, error)

	// FindGroupByLegacyActivity reports whether the activity was already
	// migrated (ok=true with the existing group id).
	FindGroupByLegacyActivity(ctx context.Context, legacyActivityId int) (id int, ok bool, err error)

	InsertOperationGroup(ctx context.Context, customerId int, status models.OperationStatus, legacyActivityId int) (int, error)

	// FirstOrCreateCaseOperation finds or creates the operation for
	// (group, case). Deposits and withdrawals use this.
	FirstOrCreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (id int, isNew bool, err error)

	// CreateCaseOperation always inserts a fresh operation. Transfer legs use this.
	CreateCaseOperation(ctx context.Context, groupId int, caseId int, kind models.OperationKind, status models.OperationStatus) (int, error)

	// PostInventory accumulates amount onto the ledger entry for the
	// four-part key under the given operation.
	PostInventory(ctx context.Context, operationId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error

	// UpsertSnapshot writes a case-level on-hand snapshot entry (nil
	// operation id, absolute amount).
	UpsertSnapshot(ctx context.Context, caseId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) error
}
