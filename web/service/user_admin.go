package service

import (
	"net/mail"

	"gorm.io/gorm"

	"userhub/database"
	"userhub/database/model"
	"userhub/util/crypto"
)

const minPasswordLength = 8

// RegisterInput is the payload for creating a user. There is no public
// signup; only staff-level callers reach this path.
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	IsStaff     bool   `json:"isStaff"`
	IsSuperuser bool   `json:"isSuperuser"`
	IsActive    *bool  `json:"isActive"`
}

// UpdateUserInput is a partial update: nil fields are left untouched.
type UpdateUserInput struct {
	Email       *string `json:"email"`
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	IsStaff     *bool   `json:"isStaff"`
	IsSuperuser *bool   `json:"isSuperuser"`
	IsActive    *bool   `json:"isActive"`
}

// UserAdminService implements the user-management operations and their
// authorization policy.
type UserAdminService struct{}

// ListUsers returns all non-admin users ordered by id. Admin records are
// excluded regardless of caller privilege so they can never be reached
// through the management channel.
func (s *UserAdminService) ListUsers() ([]*model.User, error) {
	db := database.GetDB()
	var users []*model.User
	err := db.Model(model.User{}).
		Where("role <> ?", model.RoleAdmin).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Register validates input, applies the role threshold (creating an admin
// requires an admin caller; staff may create normal and staff users) and
// stores the new user.
func (s *UserAdminService) Register(caller *model.User, input RegisterInput) (*model.User, error) {
	if !caller.Role.IsStaff() {
		return nil, ErrForbidden
	}
	role := model.RoleFromFlags(input.IsStaff, input.IsSuperuser)
	if role.IsAdmin() && !caller.Role.IsAdmin() {
		return nil, ErrForbidden
	}

	if input.Username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if err := validateEmail(input.Email); err != nil {
		return nil, err
	}
	if len(input.Password) < minPasswordLength {
		return nil, &ValidationError{Field: "password", Reason: "must be at least 8 characters"}
	}

	db := database.GetDB()
	if taken, err := s.exists(db, "username", input.Username, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "username", Reason: "already exists"}
	}
	if taken, err := s.exists(db, "email", input.Email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "email", Reason: "already exists"}
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	user := &model.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  hash,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Role:      role,
		IsActive:  isActive,
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update to the target user. Admin records are
// immutable through this path, and a target can never be promoted to admin:
// both fail with a forbidden-class error rather than being silently ignored.
// Last write wins; there is no merge conflict detection.
func (s *UserAdminService) UpdateUser(caller *model.User, targetId int, input UpdateUserInput) (*model.User, error) {
	if !caller.Role.IsStaff() {
		return nil, ErrForbidden
	}

	db := database.GetDB()
	target := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", targetId).First(target).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if target.Role.IsAdmin() {
		return nil, ErrSuperuserImmutable
	}
	if input.IsSuperuser != nil && *input.IsSuperuser {
		return nil, ErrForbidden
	}

	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
		if taken, err := s.exists(db, "email", *input.Email, target.Id); err != nil {
			return nil, err
		} else if taken {
			return nil, &ValidationError{Field: "email", Reason: "already exists"}
		}
		target.Email = *input.Email
	}
	if input.FirstName != nil {
		target.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		target.LastName = *input.LastName
	}
	if input.IsActive != nil {
		target.IsActive = *input.IsActive
	}
	if input.IsStaff != nil {
		target.Role = model.RoleFromFlags(*input.IsStaff, false)
	}

	if err := db.Save(target).Error; err != nil {
		return nil, err
	}
	return target, nil
}

func (s *UserAdminService) exists(db *gorm.DB, column, value string, excludeId int) (bool, error) {
	var count int64
	q := db.Model(model.User{}).Where(column+" = ?", value)
	if excludeId > 0 {
		q = q.Where("id <> ?", excludeId)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Reason: "must not be empty"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Reason: "invalid format"}
	}
	return nil
}
