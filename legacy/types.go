package legacy

import (
	"time"
)

// TransactionKind classifies a legacy activity. It is derived once from the
// single-character code stored on the row; unrecognized codes stay Unknown
// and are skipped by the reconciler, never defaulted.
type TransactionKind string

const (
	TransactionKindDeposit    TransactionKind = "Deposit"
	TransactionKindWithdrawal TransactionKind = "Withdrawal"
	TransactionKindTransfer   TransactionKind = "Transfer"
	TransactionKindUnknown    TransactionKind = "Unknown"
)

func TransactionKindFromCode(code string) TransactionKind {
	switch code {
	case "D":
		return TransactionKindDeposit
	case "W":
		return TransactionKindWithdrawal
	case "T":
		return TransactionKindTransfer
	default:
		return TransactionKindUnknown
	}
}

// Legacy activity status codes. The reconciliation run only selects
// StatusConfirmed activities; the full set exists because the code is also
// copied onto the new operation rows (see models.StatusFromLegacyCode).
const (
	StatusProcessed = 1
	StatusPending   = 2
	StatusConfirmed = 3
	StatusOnHold    = 4
)

// Line kinds found in ActivityDetails.Type. Supply lines (packing material)
// are never reconciled. Case lines only appear on transfers and record which
// physical locker holds a case; they carry no inventory movement.
const (
	LineKindBottle = "Bottle"
	LineKindCase   = "Case"
	LineKindSupply = "Supply"
)

// Activity is one customer-initiated transaction event in the old system.
type Activity struct {
	ActivityId      int       `gorm:"column:ActivityID;primaryKey" validate:"required"`
	AccountId       int       `gorm:"column:AccountID" validate:"required"`
	TransactionCode string    `gorm:"column:TransactionType" validate:"required,len=1"`
	Status          int       `gorm:"column:Status"`
	CreatedAt       time.Time `gorm:"column:DateCreated"`
	UpdatedAt       time.Time `gorm:"column:DateModified"`
}

func (Activity) TableName() string { return "Activities" }

func (a Activity) Kind() TransactionKind {
	return TransactionKindFromCode(a.TransactionCode)
}

// ActivityLine is one item-level movement within an activity. Wine, format
// and vintage may be absent and backfilled from the referenced case detail.
// Quantity is an unsigned count of bottles; direction comes from the
// activity's transaction kind, never from the sign.
type ActivityLine struct {
	DetailId       int    `gorm:"column:DetailID;primaryKey" validate:"required"`
	ActivityId     int    `gorm:"column:ActivityID" validate:"required"`
	LineKind       string `gorm:"column:Type" validate:"required"`
	CaseId         *int   `gorm:"column:CaseID"`
	CaseDetailId   *int   `gorm:"column:CaseDetailID"`
	WineItemId     *int   `gorm:"column:WineItemID"`
	BottleFormatId *int   `gorm:"column:BottleSizeID"`
	VintageId      *int   `gorm:"column:VintageID"`
	Quantity       int    `gorm:"column:Quantity" validate:"gte=0"`
}

func (ActivityLine) TableName() string { return "ActivityDetails" }

// CaseDetail is one (wine, format, vintage) slot of a physical case, with its
// current on-hand quantity.
type CaseDetail struct {
	CaseDetailId   int  `gorm:"column:CaseDetailID;primaryKey" validate:"required"`
	CaseId         int  `gorm:"column:CaseID" validate:"required"`
	WineItemId     *int `gorm:"column:WineItemID"`
	BottleFormatId *int `gorm:"column:BottleSizeID"`
	VintageId      *int `gorm:"column:VintageID"`
	Quantity       int  `gorm:"column:Quantity" validate:"gte=0"`
}

func (CaseDetail) TableName() string { return "CaseDetails" }

// Account is a legacy customer record.
type Account struct {
	AccountId int    `gorm:"column:AccountID;primaryKey" validate:"required"`
	Name      string `gorm:"column:Name"`
	Email     string `gorm:"column:Email"`
	IsActive  bool   `gorm:"column:IsActive"`
}

func (Account) TableName() string { return "Accounts" }
