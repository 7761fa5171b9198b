package service

import (
	"strings"

	"github.com/xlzd/gotp"
	"gorm.io/gorm"

	"userhub/config"
	"userhub/database"
	"userhub/database/model"
	"userhub/logger"
	"userhub/util/crypto"
)

// UserService verifies credentials and resolves user records for the
// session middleware.
type UserService struct{}

// GetUserById loads a user by primary key.
func (s *UserService) GetUserById(id int) (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// CheckUser verifies a username/password pair and the optional two-factor
// code. A login name containing "@" is treated as an email address and
// resolved to the owning account first. Unknown user, wrong password and
// bad two-factor code all map to ErrInvalidCredentials; a disabled account
// with a correct password maps to ErrAccountInactive.
func (s *UserService) CheckUser(username, password, twoFactorCode string) (*model.User, error) {
	db := database.GetDB()

	column := "username"
	if strings.Contains(username, "@") {
		column = "email"
	}

	user := &model.User{}
	err := db.Model(model.User{}).Where(column+" = ?", username).First(user).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	if secret := config.GetTwoFactorSecret(); secret != "" {
		if gotp.NewDefaultTOTP(secret).Now() != twoFactorCode {
			return nil, ErrInvalidCredentials
		}
	}

	if !user.IsActive {
		return nil, ErrAccountInactive
	}

	return user, nil
}

// UpdateCredentials resets a user's username and password. Used by the
// setting CLI to recover the bootstrap admin.
func (s *UserService) UpdateCredentials(id int, username, password string) error {
	if username == "" {
		return &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if password == "" {
		return &ValidationError{Field: "password", Reason: "must not be empty"}
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return err
	}
	db := database.GetDB()
	return db.Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"username": username, "password_hash": hash}).
		Error
}

// GetFirstUser returns the lowest-id user, the bootstrap admin on a fresh
// install.
func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()
	user := &model.User{}
	err := db.Model(model.User{}).Order("id ASC").First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}
