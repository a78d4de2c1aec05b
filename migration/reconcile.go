package migration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/thelllabs/winehaus-veritas-data-migration/config"
	"github.com/thelllabs/winehaus-veritas-data-migration/legacy"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
	"github.com/thelllabs/winehaus-veritas-data-migration/utils"
)

// Reconciler walks confirmed legacy activities and rebuilds them as operation
// groups, case operations and inventory ledger entries in the target store.
// It runs strictly sequentially; recoverable problems skip the current line
// or activity and land in the report, store write failures propagate up and
// abort the run.
type Reconciler struct {
	src      Source
	store    TargetStore
	resolver *Resolver
	logger   *logrus.Logger
	report   *Report
}

func NewReconciler(src Source, store TargetStore, logger *logrus.Logger) *Reconciler {
	return &Reconciler{
		src:      src,
		store:    store,
		resolver: NewResolver(store),
		logger:   logger,
		report:   &Report{},
	}
}

func (rc *Reconciler) Report() *Report { return rc.report }

// Run reconciles every legacy account.
func (rc *Reconciler) Run(ctx context.Context) error {
	if cid, ok := utils.GetCorrelationIdFromContext(ctx); ok {
		rc.logger.WithField("correlationId", cid).Info("reconciliation run starting")
	}

	accounts, err := rc.src.Accounts(ctx)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if err := rc.RunAccount(ctx, account); err != nil {
			return err
		}
	}
	return nil
}

// RunAccount reconciles all confirmed activities of one legacy account.
func (rc *Reconciler) RunAccount(ctx context.Context, account legacy.Account) error {
	rc.report.AccountsSeen++

	customerId, ok, err := rc.resolver.Resolve(ctx, IdentityCustomer, account.AccountId)
	if err != nil {
		return err
	}
	if !ok {
		rc.report.AccountsSkipped++
		rc.report.Warn("unresolved customer", 0, 0, fmt.Sprintf("legacy account %d has no target customer", account.AccountId))
		config.LogWarn(rc.logger, "migration/reconcile.go", "RunAccount", "skip account", account.AccountId, "no target customer for legacy account")
		return nil
	}

	activities, err := rc.src.ConfirmedActivities(ctx, account.AccountId)
	if err != nil {
		return err
	}
	for _, activity := range activities {
		if err := rc.reconcileActivity(ctx, customerId, activity); err != nil {
			return err
		}
	}
	return nil
}

func (rc *Reconciler) reconcileActivity(ctx context.Context, customerId int, activity legacy.Activity) error {
	rc.report.ActivitiesSeen++

	// Re-runs are detectable no-ops: the legacy activity id is stamped on the
	// group under a per-tenant unique key.
	if _, migrated, err := rc.store.FindGroupByLegacyActivity(ctx, activity.ActivityId); err != nil {
		return err
	} else if migrated {
		rc.report.ActivitiesAlreadyMigrated++
		rc.logger.WithField("activityId", activity.ActivityId).Debug("activity already migrated")
		return nil
	}

	status, err := models.StatusFromLegacyCode(activity.Status)
	if err != nil {
		rc.report.ActivitiesSkipped++
		rc.report.Warn("unmapped legacy status", activity.ActivityId, 0, err.Error())
		config.LogWarn(rc.logger, "migration/reconcile.go", "reconcileActivity", "skip activity", activity.ActivityId, err.Error())
		return nil
	}

	groupId, err := rc.store.InsertOperationGroup(ctx, customerId, status, activity.ActivityId)
	if models.IsDuplicateKey(err) {
		// Unique index backstop: another run stamped this activity between
		// the check above and the insert.
		rc.report.ActivitiesAlreadyMigrated++
		return nil
	}
	if err != nil {
		return err
	}
	rc.report.GroupsCreated++

	lines, err := rc.src.ActivityLines(ctx, activity.ActivityId)
	if err != nil {
		return err
	}

	switch activity.Kind() {
	case legacy.TransactionKindDeposit:
		if err := rc.reconcileSimple(ctx, groupId, models.OperationKindDeposit, status, activity, lines); err != nil {
			return err
		}
	case legacy.TransactionKindWithdrawal:
		if err := rc.reconcileSimple(ctx, groupId, models.OperationKindWithdrawal, status, activity, lines); err != nil {
			return err
		}
	case legacy.TransactionKindTransfer:
		if err := rc.reconcileTransfer(ctx, groupId, status, activity, lines); err != nil {
			return err
		}
	default:
		// The group row stays, with zero operations under it; the report
		// points the operator at it.
		rc.report.ActivitiesSkipped++
		rc.report.Warn("unrecognized transaction kind", activity.ActivityId, 0, activity.TransactionCode)
		config.LogWarn(rc.logger, "migration/reconcile.go", "reconcileActivity", "skip activity body", activity.ActivityId, "unrecognized transaction kind "+activity.TransactionCode)
		return nil
	}

	rc.report.ActivitiesReconciled++
	return nil
}

// reconcileSimple handles deposits and withdrawals: one case operation per
// (group, case), inventory accumulated onto it line by line.
func (rc *Reconciler) reconcileSimple(ctx context.Context, groupId int, kind models.OperationKind, status models.OperationStatus, activity legacy.Activity, lines []legacy.ActivityLine) error {
	for _, line := range lines {
		rc.report.LinesSeen++

		// The source already filters Supply lines; keep the check anyway so
		// the invariant holds regardless of who feeds us.
		if line.LineKind == legacy.LineKindSupply {
			rc.report.LinesSkipped++
			continue
		}

		if line.CaseId == nil {
			rc.skipLine(activity, line, "line has no case", "")
			continue
		}
		caseId, ok, err := rc.resolver.Resolve(ctx, IdentityCase, *line.CaseId)
		if err != nil {
			return err
		}
		if !ok {
			rc.skipLine(activity, line, "unresolved case", fmt.Sprintf("legacy case %d", *line.CaseId))
			continue
		}

		opId, isNew, err := rc.store.FirstOrCreateCaseOperation(ctx, groupId, caseId, kind, status)
		if err != nil {
			return err
		}
		if isNew {
			rc.report.OperationsCreated++
		}

		tuple, ok, err := rc.resolveTuple(ctx, activity, line)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := rc.store.PostInventory(ctx, opId, tuple.wineId, tuple.formatId, tuple.vintageId, decimal.NewFromInt(int64(line.Quantity))); err != nil {
			return err
		}
		rc.report.LedgerPosts++
	}
	return nil
}

// reconcileTransfer handles transfers: every Bottle line gets a fresh
// withdrawal operation on the source case and a fresh deposit operation on
// the destination case, the same quantity posted to both legs.
func (rc *Reconciler) reconcileTransfer(ctx context.Context, groupId int, status models.OperationStatus, activity legacy.Activity, lines []legacy.ActivityLine) error {
	for _, line := range lines {
		rc.report.LinesSeen++

		switch line.LineKind {
		case legacy.LineKindCase:
			// Locker-relocation record; no inventory movement.
			rc.report.LinesSkipped++
			rc.logger.WithFields(logrus.Fields{"activityId": activity.ActivityId, "lineId": line.DetailId}).Debug("skipping case relocation line")
			continue
		case legacy.LineKindBottle:
		default:
			rc.skipLine(activity, line, "unexpected line kind on transfer", line.LineKind)
			continue
		}

		// The source case is implied by which case the referenced detail
		// belongs to.
		detail, err := rc.backfillDetail(ctx, line)
		if err != nil {
			return err
		}
		if detail == nil {
			rc.skipLine(activity, line, "missing or unresolvable case detail for transfer source", "")
			continue
		}
		sourceCaseId, ok, err := rc.resolver.Resolve(ctx, IdentityCase, detail.CaseId)
		if err != nil {
			return err
		}
		if !ok {
			rc.skipLine(activity, line, "unresolved transfer source case", fmt.Sprintf("legacy case %d", detail.CaseId))
			continue
		}

		if line.CaseId == nil {
			rc.skipLine(activity, line, "transfer line has no destination case", "")
			continue
		}
		destCaseId, ok, err := rc.resolver.Resolve(ctx, IdentityCase, *line.CaseId)
		if err != nil {
			return err
		}
		if !ok {
			rc.skipLine(activity, line, "unresolved transfer destination case", fmt.Sprintf("legacy case %d", *line.CaseId))
			continue
		}

		tuple, ok, err := rc.resolveTuple(ctx, activity, line)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		qty := decimal.NewFromInt(int64(line.Quantity))

		// Fresh pair of legs per line, identical quantity on both, so
		// withdrawals from the source always balance deposits to the
		// destination.
		withdrawalId, err := rc.store.CreateCaseOperation(ctx, groupId, sourceCaseId, models.OperationKindWithdrawal, status)
		if err != nil {
			return err
		}
		rc.report.OperationsCreated++
		if err := rc.store.PostInventory(ctx, withdrawalId, tuple.wineId, tuple.formatId, tuple.vintageId, qty); err != nil {
			return err
		}
		rc.report.LedgerPosts++

		depositId, err := rc.store.CreateCaseOperation(ctx, groupId, destCaseId, models.OperationKindDeposit, status)
		if err != nil {
			return err
		}
		rc.report.OperationsCreated++
		if err := rc.store.PostInventory(ctx, depositId, tuple.wineId, tuple.formatId, tuple.vintageId, qty); err != nil {
			return err
		}
		rc.report.LedgerPosts++
	}
	return nil
}

type wineTuple struct {
	wineId    int
	formatId  int
	vintageId int
}

// resolveTuple resolves the line's (wine, format, vintage) target ids: direct
// fields first, then the referenced case detail, then a placeholder for the
// wine. Format and vintage are never invented; an unresolved one skips the
// line (substituting a default would corrupt inventory totals).
func (rc *Reconciler) resolveTuple(ctx context.Context, activity legacy.Activity, line legacy.ActivityLine) (wineTuple, bool, error) {
	var t wineTuple

	legacyWine := line.WineItemId
	legacyFormat := line.BottleFormatId
	legacyVintage := line.VintageId

	if legacyWine == nil || legacyFormat == nil || legacyVintage == nil {
		detail, err := rc.backfillDetail(ctx, line)
		if err != nil {
			return t, false, err
		}
		if detail != nil {
			if legacyWine == nil {
				legacyWine = detail.WineItemId
			}
			if legacyFormat == nil {
				legacyFormat = detail.BottleFormatId
			}
			if legacyVintage == nil {
				legacyVintage = detail.VintageId
			}
		}
	}

	if legacyWine == nil {
		rc.skipLine(activity, line, "no wine on line or case detail", "")
		return t, false, nil
	}
	wineId, err := rc.resolver.EnsureWine(ctx, *legacyWine)
	if err != nil {
		return t, false, err
	}

	if legacyFormat == nil {
		rc.skipLine(activity, line, "no bottle format on line or case detail", "")
		return t, false, nil
	}
	formatId, ok, err := rc.resolver.Resolve(ctx, IdentityFormat, *legacyFormat)
	if err != nil {
		return t, false, err
	}
	if !ok {
		rc.skipLine(activity, line, "unresolved bottle format", fmt.Sprintf("legacy format %d", *legacyFormat))
		return t, false, nil
	}

	if legacyVintage == nil {
		rc.skipLine(activity, line, "no vintage on line or case detail", "")
		return t, false, nil
	}
	vintageId, ok, err := rc.resolver.Resolve(ctx, IdentityVintage, *legacyVintage)
	if err != nil {
		return t, false, err
	}
	if !ok {
		rc.skipLine(activity, line, "unresolved vintage", fmt.Sprintf("legacy vintage %d", *legacyVintage))
		return t, false, nil
	}

	return wineTuple{wineId: wineId, formatId: formatId, vintageId: vintageId}, true, nil
}

// backfillDetail fetches the case detail a line references. Returns nil when
// the line has no reference, the detail row is gone, or the detail's owning
// case never made it into the target store; callers skip the line.
func (rc *Reconciler) backfillDetail(ctx context.Context, line legacy.ActivityLine) (*legacy.CaseDetail, error) {
	if line.CaseDetailId == nil {
		return nil, nil
	}
	detail, err := rc.src.CaseDetail(ctx, *line.CaseDetailId)
	if err != nil || detail == nil {
		return nil, err
	}
	if _, ok, rerr := rc.resolver.Resolve(ctx, IdentityCase, detail.CaseId); rerr != nil {
		return nil, rerr
	} else if !ok {
		return nil, nil
	}
	return detail, nil
}

func (rc *Reconciler) skipLine(activity legacy.Activity, line legacy.ActivityLine, reason string, detail string) {
	rc.report.LinesSkipped++
	rc.report.Warn(reason, activity.ActivityId, line.DetailId, detail)
	config.LogWarn(rc.logger, "migration/reconcile.go", "skipLine", reason, map[string]int{
		"activityId": activity.ActivityId,
		"lineId":     line.DetailId,
	}, detail)
}
