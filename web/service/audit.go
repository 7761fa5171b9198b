package service

import (
	"encoding/json"
	"time"

	"userhub/database"
	"userhub/database/model"
	"userhub/logger"
)

// AuditLogService records auth and user-management actions.
type AuditLogService struct{}

// LogAction writes an audit entry. Failures are logged and swallowed so a
// broken audit store never blocks the request itself.
func (s *AuditLogService) LogAction(userId int, username, action, resource string, resourceId int, ip, userAgent string, details map[string]any) {
	db := database.GetDB()

	detailsJSON := ""
	if details != nil {
		jsonData, err := json.Marshal(details)
		if err != nil {
			logger.Warning("Failed to marshal audit log details:", err)
		} else {
			detailsJSON = string(jsonData)
		}
	}

	entry := model.AuditLog{
		UserId:     userId,
		Username:   username,
		Action:     action,
		Resource:   resource,
		ResourceId: resourceId,
		Ip:         ip,
		UserAgent:  userAgent,
		Details:    detailsJSON,
		Timestamp:  time.Now(),
	}

	if err := db.Create(&entry).Error; err != nil {
		logger.Warningf("Failed to create audit log: user=%d, action=%s, error=%v", userId, action, err)
	}
}

// GetAuditLogs returns the most recent entries, newest first.
func (s *AuditLogService) GetAuditLogs(limit int) ([]model.AuditLog, error) {
	db := database.GetDB()
	var logs []model.AuditLog
	err := db.Model(model.AuditLog{}).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CleanOldLogs deletes entries older than retentionDays.
func (s *AuditLogService) CleanOldLogs(retentionDays int) error {
	db := database.GetDB()
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	return db.Where("timestamp < ?", cutoff).Delete(&model.AuditLog{}).Error
}
