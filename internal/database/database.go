package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/kerapido/internal/models"
)

var db *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	if db != nil {
		return db
	}

	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("warning: failed to ensure uuid-ossp extension: %v", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := SeedCatalogs(conn); err != nil {
		log.Fatalf("catalog seeding failed: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

// Migrate creates or updates the schema for all entities.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.CustomerType{},
		&models.DriverStatus{},
		&models.VehicleType{},
		&models.VehicleStatus{},
		&models.ServiceType{},
		&models.RequestStatus{},
		&models.CargoType{},
		&models.IncidentType{},
		&models.IncidentStatus{},
		&models.ReservationStatus{},
		&models.Currency{},
		&models.PaymentMethodType{},
		&models.PaymentChannel{},
		&models.PaymentStatus{},
		&models.FareType{},
		&models.Fare{},
		&models.Route{},
		&models.User{},
		&models.Customer{},
		&models.Driver{},
		&models.DriverService{},
		&models.Vehicle{},
		&models.ServiceRequest{},
		&models.Assignment{},
		&models.PaymentTransaction{},
		&models.Incident{},
		&models.Notification{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

// SeedCatalogs inserts the reference rows the lifecycle depends on. Existing
// rows are left untouched.
func SeedCatalogs(conn *gorm.DB) error {
	requestStatuses := []string{
		models.RequestStatusPending,
		models.RequestStatusAssigned,
		models.RequestStatusInService,
		models.RequestStatusCompleted,
	}
	for _, name := range requestStatuses {
		if err := conn.Where(models.RequestStatus{Name: name}).
			FirstOrCreate(&models.RequestStatus{Name: name}).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"disponible", "ocupado", "inactivo"} {
		if err := conn.Where(models.DriverStatus{Name: name}).
			FirstOrCreate(&models.DriverStatus{Name: name}).Error; err != nil {
			return err
		}
	}

	for _, name := range []string{"pendiente", "completado", "fallido"} {
		if err := conn.Where(models.PaymentStatus{Name: name}).
			FirstOrCreate(&models.PaymentStatus{Name: name}).Error; err != nil {
			return err
		}
	}

	currencies := []models.Currency{
		{Code: "CUP", Name: "Peso cubano"},
		{Code: "USD", Name: "US Dollar"},
	}
	for _, cur := range currencies {
		if err := conn.Where(models.Currency{Code: cur.Code}).
			FirstOrCreate(&models.Currency{Code: cur.Code, Name: cur.Name}).Error; err != nil {
			return err
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
