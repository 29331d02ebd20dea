package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/exam-portal/backend/internal/store"
)

// Wipes the stored result set. Auth flag and AI settings are left in place.
func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	path := os.Getenv("DATABASE_PATH")
	if path == "" {
		path = "portal.db"
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logrus.Fatal("Failed to connect to database: ", err)
	}

	st := store.New(store.NewGormKV(db))
	if err := st.Clear(); err != nil {
		logrus.Fatal("Failed to clear results: ", err)
	}

	logrus.Info("Cleanup completed - result set cleared")
}
