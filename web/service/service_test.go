package service

import (
	"path/filepath"
	"testing"

	"userhub/database"
	"userhub/database/model"
)

// setupTestDB opens a throwaway sqlite database. InitDB seeds the bootstrap
// admin (admin/admin), which tests use as the privileged caller.
func setupTestDB(t *testing.T) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	if err := database.InitDB(dbPath); err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := database.GetDB().DB()
		_ = sqlDB.Close()
	})
}

func bootstrapAdmin(t *testing.T) *model.User {
	t.Helper()
	admin, err := (&UserService{}).GetFirstUser()
	if err != nil {
		t.Fatalf("get bootstrap admin: %v", err)
	}
	return admin
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
