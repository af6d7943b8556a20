package storage

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Own-M/gainers-os/internal/models"
	"github.com/Own-M/gainers-os/internal/utils"
)

func OpenDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatal("failed to connect database: ", err)
	}

	if err := Migrate(db); err != nil {
		logrus.Fatal("failed migrate: ", err)
	}

	return db
}

// Migrate is split out so tests can run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Employee{},
		&models.Attendance{},
		&models.LeaveRequest{},
		&models.Expense{},
		&models.SalesRecord{},
		&models.Lead{},
		&models.Batch{},
		&models.EnrolledClient{},
		&models.SupportTicket{},
		&models.CallRequest{},
	)
}

// EnsureAdmin creates the seed admin account on first boot. It is a no-op
// when any admin already exists or when the seed credentials are unset.
func EnsureAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		FullName:     "Administrator",
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	logrus.Infof("seed admin created: %s", email)
	return nil
}
