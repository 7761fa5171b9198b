package service

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"userhub/database"
	"userhub/database/model"
	"userhub/logger"
	"userhub/util/crypto"
)

// SeedUser is one entry of a TOML seed fixture file.
type SeedUser struct {
	Username  string     `toml:"username"`
	Email     string     `toml:"email"`
	Password  string     `toml:"password"`
	FirstName string     `toml:"firstName"`
	LastName  string     `toml:"lastName"`
	Role      model.Role `toml:"role"`
	IsActive  *bool      `toml:"isActive"`
}

type seedFile struct {
	Users []SeedUser `toml:"users"`
}

// SeedService loads user fixtures into the database.
type SeedService struct {
	admin UserAdminService
}

// SeedFromFile reads a TOML fixture and creates the users in it. Existing
// usernames are skipped, so re-running the same file is safe. Returns the
// number of users created.
func (s *SeedService) SeedFromFile(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var fixture seedFile
	if err := toml.Unmarshal(raw, &fixture); err != nil {
		return 0, err
	}

	created := 0
	for _, entry := range fixture.Users {
		ok, err := s.seedOne(entry)
		if err != nil {
			return created, err
		}
		if ok {
			created++
		}
	}
	return created, nil
}

func (s *SeedService) seedOne(entry SeedUser) (bool, error) {
	if entry.Username == "" {
		return false, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if err := validateEmail(entry.Email); err != nil {
		return false, err
	}
	if len(entry.Password) < minPasswordLength {
		return false, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}
	role := entry.Role
	if role == "" {
		role = model.RoleNormal
	}
	if !role.Valid() {
		return false, &ValidationError{Field: "role", Reason: "unknown role"}
	}

	db := database.GetDB()
	if taken, err := s.admin.exists(db, "username", entry.Username, 0); err != nil {
		return false, err
	} else if taken {
		logger.Debugf("seed: user %q already exists, skipping", entry.Username)
		return false, nil
	}
	if taken, err := s.admin.exists(db, "email", entry.Email, 0); err != nil {
		return false, err
	} else if taken {
		logger.Debugf("seed: email %q already exists, skipping", entry.Email)
		return false, nil
	}

	hash, err := crypto.HashPassword(entry.Password)
	if err != nil {
		return false, err
	}
	isActive := true
	if entry.IsActive != nil {
		isActive = *entry.IsActive
	}
	user := &model.User{
		Username:  entry.Username,
		Email:     entry.Email,
		Password:  hash,
		FirstName: entry.FirstName,
		LastName:  entry.LastName,
		Role:      role,
		IsActive:  isActive,
	}
	if err := db.Create(user).Error; err != nil {
		return false, err
	}
	logger.Infof("seed: created user %q (%s)", user.Username, user.Role)
	return true, nil
}
