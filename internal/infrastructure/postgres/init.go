package postgres

import (
	"log"

	"github.com/LavaJover/booking-settlement-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MustInitDB opens the connection only. The schema is owned by the SQL
// migrations, which run before the service takes traffic.
func MustInitDB(cfg *config.SettlementConfig) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.SettlementDB.Dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	return db
}
