// Package model defines the persistent data model for userhub.
package model

import (
	"time"
)

// Role is a closed, totally ordered privilege tier. Admin implies staff
// level access, which makes a "superuser without staff" record
// unrepresentable.
type Role string

const (
	RoleNormal Role = "normal"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) rank() int {
	switch r {
	case RoleNormal:
		return 0
	case RoleStaff:
		return 1
	case RoleAdmin:
		return 2
	}
	return -1
}

// Valid reports whether r is one of the closed set of roles.
func (r Role) Valid() bool {
	return r.rank() >= 0
}

// AtLeast reports whether r is at least as privileged as other.
func (r Role) AtLeast(other Role) bool {
	return r.rank() >= other.rank()
}

// IsStaff reports whether r grants elevated operational access.
func (r Role) IsStaff() bool {
	return r.AtLeast(RoleStaff)
}

// IsAdmin reports whether r grants full administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// RoleFromFlags maps the wire-level role booleans onto a Role. The admin
// flag wins over the staff flag.
func RoleFromFlags(isStaff, isSuperuser bool) Role {
	switch {
	case isSuperuser:
		return RoleAdmin
	case isStaff:
		return RoleStaff
	default:
		return RoleNormal
	}
}

// User is an identity record. The password hash is never serialized.
type User struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Username   string    `json:"username" gorm:"uniqueIndex;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Password   string    `json:"-" gorm:"column:password_hash;not null"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       Role      `json:"role" gorm:"not null;default:normal"`
	IsActive   bool      `json:"isActive" gorm:"not null;default:true"`
	DateJoined time.Time `json:"dateJoined" gorm:"autoCreateTime"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Audit actions recorded by the auth and user-admin services.
const (
	AuditActionLogin       = "LOGIN"
	AuditActionLoginFailed = "LOGIN_FAILED"
	AuditActionLogout      = "LOGOUT"
	AuditActionRegister    = "REGISTER"
	AuditActionUpdateUser  = "UPDATE_USER"
)

// AuditLog is an append-only record of a privileged or auth-related action.
type AuditLog struct {
	Id         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId     int       `json:"userId" gorm:"index"`
	Username   string    `json:"username"`
	Action     string    `json:"action" gorm:"index"`
	Resource   string    `json:"resource"`
	ResourceId int       `json:"resourceId"`
	Ip         string    `json:"ip"`
	UserAgent  string    `json:"userAgent"`
	Details    string    `json:"details"`
	Timestamp  time.Time `json:"timestamp" gorm:"index"`
}
