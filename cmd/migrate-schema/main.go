package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/thelllabs/winehaus-veritas-data-migration/config"
	"github.com/thelllabs/winehaus-veritas-data-migration/models"
)

// migrate-schema creates/updates the target (Veritas) schema via GORM
// auto-migration. Run it once before any data migration tool.
func main() {
	createTenant := flag.String("create-tenant", "", "Optional: also create a tenant with this name")
	tenantEmail := flag.String("tenant-email", "", "Email for --create-tenant")
	flag.Parse()

	config.ConnectTargetDatabase()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized")
		os.Exit(1)
	}

	models.MigrateTable()
	fmt.Println("schema migration complete")

	if strings.TrimSpace(*createTenant) != "" {
		tenant, err := models.CreateTenant(context.Background(), *createTenant, *tenantEmail)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create tenant failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created tenant %s (%s)\n", tenant.Name, tenant.ID)
	}
}
