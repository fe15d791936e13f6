package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-server/apperrors"
)

func TestCreateObjectTypeUniqueName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")

	first, err := env.types.CreateObjectType(owner.DNI, "Herramientas")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	_, err = env.types.CreateObjectType(owner.DNI, "Herramientas")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = env.types.CreateObjectType(owner.DNI, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestObjectTypesAreShared(t *testing.T) {
	env := newTestEnv(t)
	creator := env.seedUser(t, "11111111")
	other := env.seedUser(t, "22222222")

	objType := env.seedType(t, creator.DNI, "Herramientas")

	// Any authenticated user can read and rename types.
	seen, err := env.types.GetObjectType(objType.ID)
	require.NoError(t, err)
	require.NotNil(t, seen)

	renamed, err := env.types.UpdateObjectType(other.DNI, objType.ID, "Ferretería")
	require.NoError(t, err)
	require.NotNil(t, renamed)
	assert.Equal(t, "Ferretería", renamed.Name)
}

func TestUpdateObjectTypeRejectsTakenName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	env.seedType(t, owner.DNI, "Herramientas")
	second := env.seedType(t, owner.DNI, "Cocina")

	_, err := env.types.UpdateObjectType(owner.DNI, second.ID, "Herramientas")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestDeleteObjectType(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	objType := env.seedType(t, owner.DNI, "Herramientas")

	deleted, err := env.types.DeleteObjectType(owner.DNI, objType.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)

	gone, err := env.types.GetObjectType(objType.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	// Deleting again finds nothing.
	again, err := env.types.DeleteObjectType(owner.DNI, objType.ID)
	require.NoError(t, err)
	assert.Nil(t, again)
}
