package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryLedgerEntry records how much of a (wine, format, vintage) tuple
// moved under one case operation. Entries with a nil OperationId are
// case-level on-hand snapshots; those carry CaseId instead.
//
// Uniqueness key is (operation_id, wine_id, bottle_format_id,
// bottle_vintage_id): posting a second amount for the same tuple adds to the
// existing row, it never inserts a duplicate.
type InventoryLedgerEntry struct {
	ID              int             `gorm:"primary_key" json:"id"`
	TenantId        string          `gorm:"index;not null" json:"tenant_id"`
	OperationId     *int            `gorm:"index" json:"operation_id"`
	CaseId          *int            `gorm:"index" json:"case_id"`
	WineId          int             `gorm:"index;not null" json:"wine_id"`
	BottleFormatId  int             `gorm:"not null" json:"bottle_format_id"`
	BottleVintageId int             `gorm:"not null" json:"bottle_vintage_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// PostInventoryLedgerEntry accumulates amount onto the entry for the four-part
// key, inserting the row on first post.
func PostInventoryLedgerEntry(tx *gorm.DB, tenantId string, operationId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) (*InventoryLedgerEntry, bool, error) {
	var entry InventoryLedgerEntry
	err := tx.
		Where("tenant_id = ? AND operation_id = ? AND wine_id = ? AND bottle_format_id = ? AND bottle_vintage_id = ?",
			tenantId, operationId, wineId, bottleFormatId, bottleVintageId).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = InventoryLedgerEntry{
			TenantId:        tenantId,
			OperationId:     &operationId,
			WineId:          wineId,
			BottleFormatId:  bottleFormatId,
			BottleVintageId: bottleVintageId,
			Amount:          amount,
		}
		if cerr := tx.Create(&entry).Error; cerr != nil {
			return nil, false, cerr
		}
		return &entry, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	entry.Amount = entry.Amount.Add(amount)
	if uerr := tx.Model(&InventoryLedgerEntry{}).
		Where("id = ?", entry.ID).
		Update("amount", entry.Amount).Error; uerr != nil {
		return nil, false, uerr
	}
	return &entry, false, nil
}

// UpsertSnapshotLedgerEntry writes a case-level on-hand snapshot (nil
// operation id). Snapshots are absolute quantities, so a re-run replaces the
// amount instead of accumulating it.
func UpsertSnapshotLedgerEntry(tx *gorm.DB, tenantId string, caseId int, wineId int, bottleFormatId int, bottleVintageId int, amount decimal.Decimal) (*InventoryLedgerEntry, bool, error) {
	var entry InventoryLedgerEntry
	err := tx.
		Where("tenant_id = ? AND operation_id IS NULL AND case_id = ? AND wine_id = ? AND bottle_format_id = ? AND bottle_vintage_id = ?",
			tenantId, caseId, wineId, bottleFormatId, bottleVintageId).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		entry = InventoryLedgerEntry{
			TenantId:        tenantId,
			CaseId:          &caseId,
			WineId:          wineId,
			BottleFormatId:  bottleFormatId,
			BottleVintageId: bottleVintageId,
			Amount:          amount,
		}
		if cerr := tx.Create(&entry).Error; cerr != nil {
			return nil, false, cerr
		}
		return &entry, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	entry.Amount = amount
	if uerr := tx.Model(&InventoryLedgerEntry{}).
		Where("id = ?", entry.ID).
		Update("amount", entry.Amount).Error; uerr != nil {
		return nil, false, uerr
	}
	return &entry, false, nil
}
