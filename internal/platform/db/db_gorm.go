// Package db opens the relational store used by the service.
package db

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	todoentity "todo_backend/internal/feature/todo/domain/entity"
	userentity "todo_backend/internal/feature/user/domain/entity"
)

// OpenDB connects to Postgres when DATABASE_URL is set, and falls back to a
// local SQLite file otherwise. TranslateError is enabled so duplicate-key and
// not-found conditions map to the same gorm sentinels on both drivers.
func OpenDB() *gorm.DB {
	var dial gorm.Dialector
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		dial = postgres.Open(dsn)
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "db.sqlite"
		}
		dial = sqlite.Open(path)
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dial, &gorm.Config{TranslateError: true})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Todo）
		if err := db.AutoMigrate(
			&userentity.User{},
			&todoentity.Todo{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
