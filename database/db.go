// Package database manages the SQLite store holding users and audit logs.
package database

import (
	"io/fs"
	"log"
	"os"
	"path"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"userhub/config"
	"userhub/database/model"
	"userhub/util/crypto"
)

var db *gorm.DB

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
	defaultAdminEmail    = "admin@localhost"
)

func initModels() error {
	models := []any{
		&model.User{},
		&model.AuditLog{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// initUser seeds the bootstrap admin when the users table is empty. There is
// no public signup, so a fresh install needs one account able to create the
// rest.
func initUser() error {
	empty, err := isTableEmpty("users")
	if err != nil {
		log.Printf("Error checking if users table is empty: %v", err)
		return err
	}
	if !empty {
		return nil
	}
	hash, err := crypto.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	user := &model.User{
		Username: defaultAdminUsername,
		Email:    defaultAdminEmail,
		Password: hash,
		Role:     model.RoleAdmin,
		IsActive: true,
	}
	return db.Create(user).Error
}

func isTableEmpty(tableName string) (bool, error) {
	var count int64
	err := db.Table(tableName).Count(&count).Error
	return count == 0, err
}

// InitDB opens (creating if needed) the SQLite database at dbPath, runs
// migrations and seeds the bootstrap admin.
func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface
	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	if err := initModels(); err != nil {
		return err
	}
	return initUser()
}

// CloseDB closes the underlying connection pool.
func CloseDB() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the shared gorm handle.
func GetDB() *gorm.DB {
	return db
}

// IsNotFound reports whether err is gorm's record-not-found error.
func IsNotFound(err error) bool {
	return err == gorm.ErrRecordNotFound
}
