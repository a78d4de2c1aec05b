package models

import (
	"log"

	"github.com/thelllabs/winehaus-veritas-data-migration/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Tenant{},
		&Customer{},
		&StorageCase{},
		&Wine{}, &BottleFormat{}, &BottleVintage{},
		&OperationGroup{}, &CaseOperation{},
		&InventoryLedgerEntry{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
