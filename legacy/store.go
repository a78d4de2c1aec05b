package legacy

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/thelllabs/winehaus-veritas-data-migration/config"
	"github.com/thelllabs/winehaus-veritas-data-migration/utils"
	"gorm.io/gorm"
)

// Store is the read-only view of the legacy Winehaus database. Rows are
// validated on the way out so the reconciliation core never handles
// malformed records; invalid rows are dropped with a warning.
type Store struct {
	db       *gorm.DB
	logger   *logrus.Logger
	validate *validator.Validate
}

func NewStore(db *gorm.DB, logger *logrus.Logger) *Store {
	return &Store{
		db:       db,
		logger:   logger,
		validate: validator.New(),
	}
}

// Accounts lists every legacy account, active or not. Customers are migrated
// ahead of activity reconciliation, so inactive accounts still resolve.
func (s *Store) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := s.db.WithContext(ctx).Order("AccountID").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// ConfirmedActivities lists an account's activities with the confirmed legacy
// status, oldest first.
func (s *Store) ConfirmedActivities(ctx context.Context, accountId int) ([]Activity, error) {
	var rows []Activity
	err := s.db.WithContext(ctx).
		Where("AccountID = ? AND Status = ?", accountId, StatusConfirmed).
		Order("ActivityID").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return s.validActivities(rows), nil
}

// ActivityLines lists an activity's line items excluding Supply lines, in
// legacy insertion order.
func (s *Store) ActivityLines(ctx context.Context, activityId int) ([]ActivityLine, error) {
	var rows []ActivityLine
	err := s.db.WithContext(ctx).
		Where("ActivityID = ? AND Type <> ?", activityId, LineKindSupply).
		Order("DetailID").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := rows[:0]
	for _, line := range rows {
		if verr := s.validate.Struct(line); verr != nil {
			config.LogWarn(s.logger, "legacy/store.go", "ActivityLines", "drop invalid line", map[string]any{
				"detailId": line.DetailId,
				"fields":   utils.ProcessValidationErrors(verr),
			}, "legacy line failed validation")
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// CaseDetail looks up one case-detail row by its legacy id. Returns
// (nil, nil) when the row does not exist; callers skip the line in that case.
func (s *Store) CaseDetail(ctx context.Context, caseDetailId int) (*CaseDetail, error) {
	var row CaseDetail
	err := s.db.WithContext(ctx).Where("CaseDetailID = ?", caseDetailId).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// AllCaseDetails lists every case-detail row, grouped by case. Used by the
// on-hand snapshot loader.
func (s *Store) AllCaseDetails(ctx context.Context) ([]CaseDetail, error) {
	var rows []CaseDetail
	if err := s.db.WithContext(ctx).Order("CaseID, CaseDetailID").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) validActivities(rows []Activity) []Activity {
	out := rows[:0]
	for _, a := range rows {
		if verr := s.validate.Struct(a); verr != nil {
			config.LogWarn(s.logger, "legacy/store.go", "validActivities", "drop invalid activity", map[string]any{
				"activityId": a.ActivityId,
				"fields":     utils.ProcessValidationErrors(verr),
			}, "legacy activity failed validation")
			continue
		}
		out = append(out, a)
	}
	return out
}
