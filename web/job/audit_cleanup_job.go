// Package job contains the cron jobs scheduled by the web server.
package job

import (
	"userhub/config"
	"userhub/logger"
	"userhub/web/service"
)

// AuditCleanupJob prunes audit log entries past the retention window.
type AuditCleanupJob struct {
	auditService service.AuditLogService
}

// NewAuditCleanupJob creates a new audit cleanup job.
func NewAuditCleanupJob() *AuditCleanupJob {
	return &AuditCleanupJob{}
}

// Run deletes audit entries older than the configured retention.
func (j *AuditCleanupJob) Run() {
	retentionDays := config.GetAuditRetentionDays()
	if retentionDays <= 0 {
		retentionDays = 90
	}

	if err := j.auditService.CleanOldLogs(retentionDays); err != nil {
		logger.Warning("Failed to clean old audit logs:", err)
	} else {
		logger.Debugf("Audit cleanup completed (retention: %d days)", retentionDays)
	}
}
