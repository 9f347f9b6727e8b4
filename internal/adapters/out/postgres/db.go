package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // database/sql driver
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/agentrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
)

// Open connects to Postgres through lib/pq and wraps the connection with
// GORM. Going through database/sql keeps driver errors as *pq.Error, which
// the repositories rely on to classify unique violations.
func Open(dsn string) (*gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open gorm: %w", err)
	}
	return db, nil
}

// Migrate creates the schema: both aggregate tables and the order number
// sequence the repository draws from.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&orderrepo.OrderDTO{}, &agentrepo.AgentDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	if err := db.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error; err != nil {
		return fmt.Errorf("create order number sequence: %w", err)
	}
	return nil
}
