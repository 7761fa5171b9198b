package model

import "testing"

func TestRoleOrdering(t *testing.T) {
	tests := []struct {
		role    Role
		other   Role
		atLeast bool
	}{
		{RoleNormal, RoleNormal, true},
		{RoleNormal, RoleStaff, false},
		{RoleNormal, RoleAdmin, false},
		{RoleStaff, RoleNormal, true},
		{RoleStaff, RoleStaff, true},
		{RoleStaff, RoleAdmin, false},
		{RoleAdmin, RoleNormal, true},
		{RoleAdmin, RoleStaff, true},
		{RoleAdmin, RoleAdmin, true},
	}
	for _, tt := range tests {
		if got := tt.role.AtLeast(tt.other); got != tt.atLeast {
			t.Errorf("%s.AtLeast(%s) = %v, want %v", tt.role, tt.other, got, tt.atLeast)
		}
	}
}

func TestRoleFlags(t *testing.T) {
	tests := []struct {
		role    Role
		isStaff bool
		isAdmin bool
	}{
		{RoleNormal, false, false},
		{RoleStaff, true, false},
		{RoleAdmin, true, true},
	}
	for _, tt := range tests {
		if got := tt.role.IsStaff(); got != tt.isStaff {
			t.Errorf("%s.IsStaff() = %v, want %v", tt.role, got, tt.isStaff)
		}
		if got := tt.role.IsAdmin(); got != tt.isAdmin {
			t.Errorf("%s.IsAdmin() = %v, want %v", tt.role, got, tt.isAdmin)
		}
	}
}

func TestRoleFromFlags(t *testing.T) {
	tests := []struct {
		isStaff     bool
		isSuperuser bool
		want        Role
	}{
		{false, false, RoleNormal},
		{true, false, RoleStaff},
		{false, true, RoleAdmin},
		{true, true, RoleAdmin},
	}
	for _, tt := range tests {
		if got := RoleFromFlags(tt.isStaff, tt.isSuperuser); got != tt.want {
			t.Errorf("RoleFromFlags(%v, %v) = %s, want %s", tt.isStaff, tt.isSuperuser, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleNormal, RoleStaff, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%s.Valid() = false", r)
		}
	}
	if Role("root").Valid() {
		t.Error(`Role("root").Valid() = true`)
	}
}
