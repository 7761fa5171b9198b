package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckUser(t *testing.T) {
	setupTestDB(t)
	admin := bootstrapAdmin(t)

	adminSvc := UserAdminService{}
	_, err := adminSvc.Register(admin, RegisterInput{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "password1",
		IsStaff:  true,
	})
	require.NoError(t, err)

	_, err = adminSvc.Register(admin, RegisterInput{
		Username: "inactive",
		Email:    "inactive@x.com",
		Password: "password1",
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	svc := UserService{}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.CheckUser("alice", "password1", "")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("login by email", func(t *testing.T) {
		user, err := svc.CheckUser("alice@x.com", "password1", "")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, errWrongPw := svc.CheckUser("alice", "wrongpw", "")
		_, errNoUser := svc.CheckUser("nobody", "whatever", "")
		assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, ErrInvalidCredentials)
		assert.Equal(t, errWrongPw, errNoUser)
	})

	t.Run("inactive account fails even with correct password", func(t *testing.T) {
		_, err := svc.CheckUser("inactive", "password1", "")
		assert.ErrorIs(t, err, ErrAccountInactive)
	})

	t.Run("unknown email alias", func(t *testing.T) {
		_, err := svc.CheckUser("ghost@x.com", "password1", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestGetUserById(t *testing.T) {
	setupTestDB(t)
	admin := bootstrapAdmin(t)

	svc := UserService{}

	user, err := svc.GetUserById(admin.Id)
	require.NoError(t, err)
	assert.Equal(t, admin.Username, user.Username)

	_, err = svc.GetUserById(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateCredentials(t *testing.T) {
	setupTestDB(t)
	admin := bootstrapAdmin(t)

	svc := UserService{}
	require.NoError(t, svc.UpdateCredentials(admin.Id, "root", "newpassword1"))

	user, err := svc.CheckUser("root", "newpassword1", "")
	require.NoError(t, err)
	assert.Equal(t, admin.Id, user.Id)

	err = svc.UpdateCredentials(admin.Id, "", "pw")
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}
