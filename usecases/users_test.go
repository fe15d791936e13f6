package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-server/apperrors"
)

func TestCreateUserRequiresIdentityFields(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		in   UserInput
	}{
		{"missing dni", UserInput{Username: "ana", Email: "ana@example.com", Password: "pw"}},
		{"missing username", UserInput{DNI: "11111111", Email: "ana@example.com", Password: "pw"}},
		{"missing email", UserInput{DNI: "11111111", Username: "ana", Password: "pw"}},
		{"missing password", UserInput{DNI: "11111111", Username: "ana", Email: "ana@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.users.CreateUser(tc.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestCreateUserRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "11111111")

	cases := []struct {
		name string
		in   UserInput
	}{
		{"duplicate dni", UserInput{DNI: "11111111", Username: "otra", Email: "otra@example.com", Password: "pw"}},
		{"duplicate username", UserInput{DNI: "22222222", Username: "user-11111111", Email: "otra@example.com", Password: "pw"}},
		{"duplicate email", UserInput{DNI: "22222222", Username: "otra", Email: "user-11111111@example.com", Password: "pw"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.users.CreateUser(tc.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestCreateUserHashesPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)
	assert.True(t, user.CheckPassword("s3cret-password"))
	assert.False(t, user.CheckPassword("wrong"))
}

func TestAuthenticate(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")

	byUsername, err := env.users.Authenticate(user.Username, "s3cret-password")
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.DNI, byUsername.DNI)

	byEmail, err := env.users.Authenticate(user.Email, "s3cret-password")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.DNI, byEmail.DNI)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")

	wrongPassword, err := env.users.Authenticate(user.Username, "wrong")
	require.NoError(t, err)

	unknownUser, err := env.users.Authenticate("nobody", "s3cret-password")
	require.NoError(t, err)

	assert.Nil(t, wrongPassword)
	assert.Nil(t, unknownUser)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")

	_, err := env.users.UpdateUser(user.DNI, UserInput{Password: "nueva-clave"})
	require.NoError(t, err)

	old, err := env.users.Authenticate(user.Username, "s3cret-password")
	require.NoError(t, err)
	assert.Nil(t, old)

	fresh, err := env.users.Authenticate(user.Username, "nueva-clave")
	require.NoError(t, err)
	require.NotNil(t, fresh)
}

func TestUpdateUserRejectsTakenUsername(t *testing.T) {
	env := newTestEnv(t)
	first := env.seedUser(t, "11111111")
	second := env.seedUser(t, "22222222")

	_, err := env.users.UpdateUser(second.DNI, UserInput{Username: first.Username})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")

	require.NoError(t, env.users.UpdateToken(user.DNI, "issued-token"))

	stored, err := env.users.GetUser(user.DNI)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "issued-token", stored.JWTToken)
}

func TestDeleteUserPurgesEverything(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "11111111")
	bystander := env.seedUser(t, "22222222")
	drawer := env.seedDrawer(t, user.DNI, "Escritorio", 5)
	keep := env.seedDrawer(t, bystander.DNI, "Ajeno", 5)
	objType := env.seedType(t, user.DNI, "Varios")

	obj, err := env.objects.CreateObject(user.DNI, drawer.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	deleted, err := env.users.DeleteUser(user.DNI)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gone, err := env.users.GetUser(user.DNI)
	require.NoError(t, err)
	assert.Nil(t, gone)

	drawers, err := env.drawers.ListDrawers(user.DNI, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, drawers)

	orphan, err := env.objects.GetObject(obj.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan)

	history, err := env.actions.ListByUser(user.DNI)
	require.NoError(t, err)
	assert.Empty(t, history)

	// The purge must not touch anyone else.
	untouched, err := env.drawers.GetDrawer(bystander.DNI, keep.ID)
	require.NoError(t, err)
	assert.NotNil(t, untouched)
}
