package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/thelllabs/winehaus-veritas-data-migration/config"
	"github.com/thelllabs/winehaus-veritas-data-migration/legacy"
	"github.com/thelllabs/winehaus-veritas-data-migration/migration"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
	"github.com/thelllabs/winehaus-veritas-data-migration/utils"
)

// inventory-snapshot loads case-level on-hand quantities from legacy case
// details as inventory ledger entries with no operation (operation_id NULL,
// case_id set). Amounts are absolute; re-running replaces them.
func main() {
	tenantId := flag.String("tenant-id", "", "Required: target tenant id (uuid)")
	dryRun := flag.Bool("dry-run", false, "If true, roll back all writes at the end and only print the report")
	reportXlsx := flag.String("report-xlsx", "", "Optional: write the skip report to this xlsx file")
	flag.Parse()

	if strings.TrimSpace(*tenantId) == "" {
		fmt.Fprintln(os.Stderr, "--tenant-id is required")
		os.Exit(1)
	}

	config.ConnectTargetDatabase()
	config.ConnectLegacyDatabase()
	db := config.GetDB()
	legacyDb := config.GetLegacyDB()
	if db == nil || legacyDb == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}
	logger := config.GetLogger()

	ctx := context.Background()
	ctx = utils.SetTenantIdInContext(ctx, *tenantId)
	ctx = utils.SetCorrelationIdInContext(ctx, uuid.NewString())

	if _, err := models.GetTenantById(ctx, *tenantId); err != nil {
		fmt.Fprintf(os.Stderr, "tenant lookup failed: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Println("[dry-run] all writes will be rolled back")
	}

	tx := db.Begin()
	if tx.Error != nil {
		fmt.Fprintf(os.Stderr, "begin transaction: %v\n", tx.Error)
		os.Exit(1)
	}

	src := legacy.NewStore(legacyDb, logger)
	store := migration.NewGormTargetStore(tx, *tenantId)
	reconciler := migration.NewReconciler(src, store, logger)

	if err := reconciler.LoadCaseSnapshots(ctx); err != nil {
		tx.Rollback()
		config.LogError(logger, "cmd/inventory-snapshot", "main", "snapshot load failed", nil, err)
		os.Exit(1)
	}

	if *dryRun {
		tx.Rollback()
	} else if cerr := tx.Commit().Error; cerr != nil {
		config.LogError(logger, "cmd/inventory-snapshot", "main", "commit failed", nil, cerr)
		os.Exit(1)
	}

	report := reconciler.Report()
	report.Log(logger)
	if strings.TrimSpace(*reportXlsx) != "" {
		if xerr := report.ExportExcel(*reportXlsx); xerr != nil {
			fmt.Fprintf(os.Stderr, "report export failed: %v\n", xerr)
			os.Exit(1)
		}
	}
	fmt.Println("inventory snapshot complete")
}
