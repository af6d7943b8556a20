package main

import (
	"github.com/sirupsen/logrus"

	"github.com/Own-M/gainers-os/internal/config"
	"github.com/Own-M/gainers-os/internal/routes"
	"github.com/Own-M/gainers-os/internal/sheets"
	"github.com/Own-M/gainers-os/internal/storage"
)

func main() {
	cfg := config.Get()

	db := storage.OpenDB(cfg.DatabaseDSN)
	if err := storage.EnsureAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logrus.Fatal("failed to seed admin: ", err)
	}

	importer := sheets.NewClient(cfg.SheetsCredentialsFile, cfg.SheetsSpreadsheetID, cfg.SheetsRange)

	r := routes.NewRouter(db, routes.Options{
		JWTSecret: cfg.JWTSecret,
		Importer:  importer,
	})

	addr := ":" + cfg.Port
	logrus.Infof("server running on %s", addr)

	if err := r.Run(addr); err != nil {
		logrus.Fatal(err)
	}
}
