package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userhub/database"
	"userhub/database/model"
)

func TestAuditLogRetention(t *testing.T) {
	setupTestDB(t)
	svc := AuditLogService{}

	svc.LogAction(1, "alice", model.AuditActionLogin, "session", 0, "127.0.0.1", "test", nil)
	svc.LogAction(1, "alice", model.AuditActionLogout, "session", 0, "127.0.0.1", "test", map[string]any{"k": "v"})

	// Backdate one entry past the retention window.
	db := database.GetDB()
	old := time.Now().AddDate(0, 0, -120)
	require.NoError(t, db.Model(&model.AuditLog{}).
		Where("action = ?", model.AuditActionLogout).
		Update("timestamp", old).Error)

	require.NoError(t, svc.CleanOldLogs(90))

	logs, err := svc.GetAuditLogs(10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, model.AuditActionLogin, logs[0].Action)
}
