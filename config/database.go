package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	targetDB *gorm.DB
	legacyDB *gorm.DB
)

// GetDB returns the target (Veritas) database connection.
func GetDB() *gorm.DB {
	return targetDB
}

// GetLegacyDB returns the read-only legacy (Winehaus) database connection.
func GetLegacyDB() *gorm.DB {
	return legacyDB
}

func init() {
	// Load env from .env
	godotenv.Load()
}

// ConnectTargetDatabase connects to the target store and sets the package-level handle.
// The tenant guard plugin is installed so every tenant-scoped model write/read
// carries the context tenant id.
func ConnectTargetDatabase() {
	targetDB = connectWithRetry("TARGET", true)
}

// ConnectLegacyDatabase connects to the legacy source. No tenant guard: the
// legacy schema is tenant-unaware and only ever read.
func ConnectLegacyDatabase() {
	legacyDB = connectWithRetry("LEGACY", false)
}

func connectWithRetry(prefix string, tenantGuard bool) *gorm.DB {
	dbUser := os.Getenv(prefix + "_DB_USER")
	dbPassword := os.Getenv(prefix + "_DB_PASSWORD")
	dbHost := os.Getenv(prefix + "_DB_HOST")
	dbPort := os.Getenv(prefix + "_DB_PORT")
	dbName := os.Getenv(prefix + "_DB_NAME")

	network := "tcp"
	address := fmt.Sprintf("%s:%s", dbHost, dbPort)

	// Cloud SQL: when the host is "/cloudsql/<CONNECTION_NAME>", connect using
	// the Unix domain socket provided by the Cloud SQL Auth Proxy.
	if strings.HasPrefix(dbHost, "/cloudsql/") {
		network = "unix"
		address = dbHost
	}

	databaseConfig := fmt.Sprintf("%s:%s@%s(%s)/%s?multiStatements=true&parseTime=true",
		dbUser,
		dbPassword,
		network,
		address,
		dbName,
	)

	var attempt int
	for {
		attempt++
		db, err := gorm.Open(mysql.Open(databaseConfig), initConfig())
		if err == nil {
			if sqlDB, derr := db.DB(); derr == nil && sqlDB != nil {
				// A migration run is a single sequential walker; a handful of
				// connections is plenty.
				maxOpen := intFromEnv("DB_MAX_OPEN_CONNS", 5)
				maxIdle := intFromEnv("DB_MAX_IDLE_CONNS", 2)
				connMaxLife := time.Duration(intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)) * time.Second

				if maxOpen > 0 {
					sqlDB.SetMaxOpenConns(maxOpen)
				}
				if maxIdle >= 0 {
					sqlDB.SetMaxIdleConns(maxIdle)
				}
				if connMaxLife > 0 {
					sqlDB.SetConnMaxLifetime(connMaxLife)
				}
			}

			if pluginErr := db.Use(otelgorm.NewPlugin()); pluginErr != nil {
				log.Printf("db connected but failed to install otelgorm plugin: %v", pluginErr)
			}
			if tenantGuard {
				if pluginErr := db.Use(NewTenantGuardPlugin()); pluginErr != nil {
					log.Printf("db connected but failed to install tenant guard plugin: %v", pluginErr)
				}
			}
			log.Printf("connected to %s database (attempt=%d)", strings.ToLower(prefix), attempt)
			return db
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		if sleep > 30*time.Second {
			sleep = 30 * time.Second
		}
		log.Printf("failed to connect %s database (attempt=%d): %v; retrying in %s", strings.ToLower(prefix), attempt, err, sleep)
		time.Sleep(sleep)
	}
}

func intFromEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func initConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         initLog(),
		NamingStrategy: initNamingStrategy(),
	}
}

func initLog() logger.Interface {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			Colorful:      false,
			LogLevel:      logger.Error,
			SlowThreshold: time.Second,
		},
	)
	return newLogger
}

func initNamingStrategy() *schema.NamingStrategy {
	return &schema.NamingStrategy{
		SingularTable: false,
		TablePrefix:   "",
	}
}
