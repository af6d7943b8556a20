package config

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	Port        string
	DatabaseDSN string
	JWTSecret   string

	// Seed admin created on first boot when no admin user exists.
	AdminEmail    string
	AdminPassword string

	// Google Sheets lead import.
	SheetsCredentialsFile string
	SheetsSpreadsheetID   string
	SheetsRange           string
}

var instance *AppConfig
var once sync.Once

func Get() *AppConfig {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Info("no .env file found, using process environment")
		}

		instance = &AppConfig{
			Port:        getEnv("PORT", "8080"),
			DatabaseDSN: getEnv("DATABASE_DSN", ""),
			JWTSecret:   getEnv("JWT_SECRET", ""),

			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),

			SheetsCredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", "credentials.json"),
			SheetsSpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			SheetsRange:           getEnv("SHEETS_RANGE", "Sheet1"),
		}

		if instance.JWTSecret == "" {
			logrus.Fatal("JWT_SECRET must be set")
		}
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

