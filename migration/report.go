package migration

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// SkipWarning is one itemized reason a line or activity was left behind.
// The operator works through these by hand after the run.
type SkipWarning struct {
	Reason     string
	ActivityId int
	LineId     int
	Detail     string
}

// Report accumulates per-run counters and warnings. It is the only feedback
// channel of a migration run.
type Report struct {
	AccountsSeen    int
	AccountsSkipped int

	ActivitiesSeen            int
	ActivitiesReconciled      int
	ActivitiesAlreadyMigrated int
	ActivitiesSkipped         int

	GroupsCreated     int
	OperationsCreated int

	LinesSeen    int
	LinesSkipped int

	LedgerPosts      int
	SnapshotsWritten int

	Warnings []SkipWarning
}

func (r *Report) Warn(reason string, activityId int, lineId int, detail string) {
	r.Warnings = append(r.Warnings, SkipWarning{
		Reason:     reason,
		ActivityId: activityId,
		LineId:     lineId,
		Detail:     detail,
	})
}

func (r *Report) Log(logger *logrus.Logger) {
	logger.WithFields(logrus.Fields{
		"accountsSeen":              r.AccountsSeen,
		"accountsSkipped":           r.AccountsSkipped,
		"activitiesSeen":            r.ActivitiesSeen,
		"activitiesReconciled":      r.ActivitiesReconciled,
		"activitiesAlreadyMigrated": r.ActivitiesAlreadyMigrated,
		"activitiesSkipped":         r.ActivitiesSkipped,
		"groupsCreated":             r.GroupsCreated,
		"operationsCreated":         r.OperationsCreated,
		"linesSeen":                 r.LinesSeen,
		"linesSkipped":              r.LinesSkipped,
		"ledgerPosts":               r.LedgerPosts,
		"snapshotsWritten":          r.SnapshotsWritten,
		"warnings":                  len(r.Warnings),
	}).Info("migration run summary")

	for _, w := range r.Warnings {
		logger.WithFields(logrus.Fields{
			"reason":     w.Reason,
			"activityId": w.ActivityId,
			"lineId":     w.LineId,
			"detail":     w.Detail,
		}).Warn("skipped during migration")
	}
}

// ExportExcel writes the warning list to an xlsx file for post-run cleanup.
func (r *Report) ExportExcel(filename string) error {
	f := excelize.NewFile()
	sheetName := "Sheet1"
	_, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	// Add headers
	f.SetCellValue(sheetName, "A1", "Reason")
	f.SetCellValue(sheetName, "B1", "ActivityId")
	f.SetCellValue(sheetName, "C1", "LineId")
	f.SetCellValue(sheetName, "D1", "Detail")

	// Add data
	for i, w := range r.Warnings {
		f.SetCellValue(sheetName, "A"+fmt.Sprint(i+2), w.Reason)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(i+2), w.ActivityId)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(i+2), w.LineId)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(i+2), w.Detail)
	}

	if err := f.SaveAs(filename); err != nil {
		return err
	}
	return nil
}
