// Package entity defines the wire-level data structures of the userhub API.
package entity

import (
	"time"

	"userhub/database/model"
)

// UserSnapshot is a point-in-time, read-only copy of a user record returned
// to clients. Secrets are never part of it. The role booleans are derived
// from the ordered role tier, so isSuperuser always implies isStaff.
type UserSnapshot struct {
	Id          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	IsActive    bool      `json:"isActive"`
	IsStaff     bool      `json:"isStaff"`
	IsSuperuser bool      `json:"isSuperuser"`
	DateJoined  time.Time `json:"dateJoined"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Snapshot converts a stored user into its wire representation.
func Snapshot(u *model.User) *UserSnapshot {
	return &UserSnapshot{
		Id:          u.Id,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		IsActive:    u.IsActive,
		IsStaff:     u.Role.IsStaff(),
		IsSuperuser: u.Role.IsAdmin(),
		DateJoined:  u.DateJoined,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// AuthResult is the uniform mutation/query response. Expected business
// failures are carried here with Success=false; only infrastructure errors
// use the HTTP error channel.
type AuthResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *UserSnapshot `json:"user,omitempty"`
}

// UserList is the allUsers response payload.
type UserList struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Users   []*UserSnapshot `json:"users"`
}
