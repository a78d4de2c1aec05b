package migration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// LoadCaseSnapshots writes case-level on-hand inventory snapshots: one ledger
// entry per legacy case detail with a positive quantity, with a nil operation
// id and the target case id set. Amounts are absolute, so re-running replaces
// rather than accumulates.
func (rc *Reconciler) LoadCaseSnapshots(ctx context.Context) error {
	details, err := rc.src.AllCaseDetails(ctx)
	if err != nil {
		return err
	}

	for _, detail := range details {
		if detail.Quantity <= 0 {
			continue
		}

		caseId, ok, err := rc.resolver.Resolve(ctx, IdentityCase, detail.CaseId)
		if err != nil {
			return err
		}
		if !ok {
			rc.report.Warn("unresolved case for snapshot", 0, detail.CaseDetailId, fmt.Sprintf("legacy case %d", detail.CaseId))
			continue
		}

		if detail.WineItemId == nil {
			rc.report.Warn("snapshot detail has no wine", 0, detail.CaseDetailId, "")
			continue
		}
		wineId, err := rc.resolver.EnsureWine(ctx, *detail.WineItemId)
		if err != nil {
			return err
		}

		if detail.BottleFormatId == nil {
			rc.report.Warn("snapshot detail has no bottle format", 0, detail.CaseDetailId, "")
			continue
		}
		formatId, ok, err := rc.resolver.Resolve(ctx, IdentityFormat, *detail.BottleFormatId)
		if err != nil {
			return err
		}
		if !ok {
			rc.report.Warn("unresolved bottle format for snapshot", 0, detail.CaseDetailId, fmt.Sprintf("legacy format %d", *detail.BottleFormatId))
			continue
		}

		if detail.VintageId == nil {
			rc.report.Warn("snapshot detail has no vintage", 0, detail.CaseDetailId, "")
			continue
		}
		vintageId, ok, err := rc.resolver.Resolve(ctx, IdentityVintage, *detail.VintageId)
		if err != nil {
			return err
		}
		if !ok {
			rc.report.Warn("unresolved vintage for snapshot", 0, detail.CaseDetailId, fmt.Sprintf("legacy vintage %d", *detail.VintageId))
			continue
		}

		if err := rc.store.UpsertSnapshot(ctx, caseId, wineId, formatId, vintageId, decimal.NewFromInt(int64(detail.Quantity))); err != nil {
			return err
		}
		rc.report.SnapshotsWritten++
	}
	return nil
}
