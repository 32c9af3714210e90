package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sharath018/rental-management-backend/config"
	"github.com/sharath018/rental-management-backend/internal/auditlog"
	"github.com/sharath018/rental-management-backend/internal/auth"
	"github.com/sharath018/rental-management-backend/internal/rent"
	"github.com/sharath018/rental-management-backend/internal/room"
	"github.com/sharath018/rental-management-backend/internal/tenant"
	"github.com/sharath018/rental-management-backend/internal/updaterequest"
)

// Connect opens the Postgres connection described by cfg.
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	return db
}

// Migrate runs AutoMigrate for every model in the application.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.Admin{},
		&room.Room{},
		&tenant.Tenant{},
		&rent.RentEntry{},
		&updaterequest.UpdateRequest{},
		&auditlog.AuditLog{},
	)
}
