package usecases

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-server/apperrors"
	"inventory-server/entities"
)

func TestCreateObjectEnforcesCapacity(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 2)
	pens := env.seedType(t, owner.DNI, "Papelería")

	for i := 0; i < 2; i++ {
		_, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
			Name:         fmt.Sprintf("Lapicero %d", i),
			SizeConcept:  "tiny",
			ObjectTypeID: pens.ID,
		})
		require.NoError(t, err)
	}

	_, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
		Name:         "Lapicero extra",
		SizeConcept:  "tiny",
		ObjectTypeID: pens.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	current, err := env.drawers.GetDrawer(owner.DNI, drawer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.ActualObj)
}

func TestCreateObjectRejectsForeignDrawer(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	intruder := env.seedUser(t, "22222222")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 5)
	objType := env.seedType(t, owner.DNI, "Varios")

	_, err := env.objects.CreateObject(intruder.DNI, drawer.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsOwnership(err))

	current, err := env.drawers.GetDrawer(owner.DNI, drawer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.ActualObj)
}

func TestCreateObjectValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 5)
	objType := env.seedType(t, owner.DNI, "Varios")

	cases := []struct {
		name string
		in   ObjectInput
	}{
		{"missing name", ObjectInput{SizeConcept: "SMALL", ObjectTypeID: objType.ID}},
		{"bad size", ObjectInput{Name: "Taza", SizeConcept: "GIGANTIC", ObjectTypeID: objType.ID}},
		{"unknown type", ObjectInput{Name: "Taza", SizeConcept: "SMALL", ObjectTypeID: 999}},
		{"missing type", ObjectInput{Name: "Taza", SizeConcept: "SMALL"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.objects.CreateObject(owner.DNI, drawer.ID, tc.in)
			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestDeleteObjectDecrementsOccupancy(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 5)
	objType := env.seedType(t, owner.DNI, "Varios")

	obj, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	deleted, err := env.objects.DeleteObject(owner.DNI, obj.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.Equal(t, "Taza", deleted.Name)

	current, err := env.drawers.GetDrawer(owner.DNI, drawer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.ActualObj)

	// A second delete finds nothing.
	deleted, err = env.objects.DeleteObject(owner.DNI, obj.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}

func TestMoveObjectUpdatesBothCounters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	source := env.seedDrawer(t, owner.DNI, "Origen", 3)
	target := env.seedDrawer(t, owner.DNI, "Destino", 3)
	objType := env.seedType(t, owner.DNI, "Varios")

	obj, err := env.objects.CreateObject(owner.DNI, source.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	moved, err := env.objects.MoveObject(owner.DNI, obj.ID, target.ID)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, target.ID, moved.DrawerID)

	src, err := env.drawers.GetDrawer(owner.DNI, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, src.ActualObj)

	dst, err := env.drawers.GetDrawer(owner.DNI, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dst.ActualObj)
}

func TestMoveObjectFullTargetLeavesStateUnchanged(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	source := env.seedDrawer(t, owner.DNI, "Origen", 3)
	target := env.seedDrawer(t, owner.DNI, "Destino", 1)
	objType := env.seedType(t, owner.DNI, "Varios")

	obj, err := env.objects.CreateObject(owner.DNI, source.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	_, err = env.objects.CreateObject(owner.DNI, target.ID, ObjectInput{
		Name:         "Plato",
		SizeConcept:  "MEDIUM",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	_, err = env.objects.MoveObject(owner.DNI, obj.ID, target.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	still, err := env.objects.GetObject(obj.ID)
	require.NoError(t, err)
	assert.Equal(t, source.ID, still.DrawerID)

	src, err := env.drawers.GetDrawer(owner.DNI, source.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, src.ActualObj)

	dst, err := env.drawers.GetDrawer(owner.DNI, target.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, dst.ActualObj)
}

func TestMoveObjectRejectsForeignTarget(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	other := env.seedUser(t, "22222222")
	source := env.seedDrawer(t, owner.DNI, "Origen", 3)
	foreign := env.seedDrawer(t, other.DNI, "Ajeno", 3)
	objType := env.seedType(t, owner.DNI, "Varios")

	obj, err := env.objects.CreateObject(owner.DNI, source.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	_, err = env.objects.MoveObject(owner.DNI, obj.ID, foreign.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsOwnership(err))
}

func TestFindDuplicateObjects(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 10)
	pens := env.seedType(t, owner.DNI, "Papelería")
	kitchen := env.seedType(t, owner.DNI, "Cocina")

	var penIDs []uint
	for i := 0; i < 3; i++ {
		obj, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
			Name:         "Lapicero",
			SizeConcept:  "TINY",
			ObjectTypeID: pens.ID,
		})
		require.NoError(t, err)
		penIDs = append(penIDs, obj.ID)
	}
	_, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: kitchen.ID,
	})
	require.NoError(t, err)

	groups, err := env.objects.FindDuplicateObjects(drawer.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, penIDs, groups[0])
}

func TestFindDuplicateObjectsLargeDrawer(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Bodega", 150)
	pens := env.seedType(t, owner.DNI, "Papelería")

	// Well past any page size a store might default to.
	const copies = 102
	var ids []uint
	for i := 0; i < copies; i++ {
		obj, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
			Name:         "Lapicero",
			SizeConcept:  "TINY",
			ObjectTypeID: pens.ID,
		})
		require.NoError(t, err)
		ids = append(ids, obj.ID)
	}

	groups, err := env.objects.FindDuplicateObjects(drawer.ID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0], copies)
	assert.Equal(t, ids, groups[0])
}

func TestConcurrentCreatesRespectCapacity(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 3)
	objType := env.seedType(t, owner.DNI, "Varios")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
				Name:         fmt.Sprintf("Objeto %d", i),
				SizeConcept:  "SMALL",
				ObjectTypeID: objType.ID,
			})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	created := 0
	for err := range results {
		if err == nil {
			created++
		} else {
			assert.True(t, apperrors.IsValidation(err), "unexpected error kind: %v", err)
		}
	}
	assert.Equal(t, 3, created)

	current, err := env.drawers.GetDrawer(owner.DNI, drawer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, current.ActualObj)

	stored, err := env.objects.GetObjectsByDrawer(drawer.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestObjectMutationsAreAudited(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 5)
	objType := env.seedType(t, owner.DNI, "Varios")

	obj, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
		Name:         "Taza",
		SizeConcept:  "SMALL",
		ObjectTypeID: objType.ID,
	})
	require.NoError(t, err)

	_, err = env.objects.DeleteObject(owner.DNI, obj.ID)
	require.NoError(t, err)

	entries, err := env.actions.ListByUser(owner.DNI)
	require.NoError(t, err)

	types := make([]string, 0, len(entries))
	for _, e := range entries {
		types = append(types, e.ActionType)
	}
	assert.Contains(t, types, entities.ActionCreateObject)
	assert.Contains(t, types, entities.ActionDeleteObject)
}

func TestGetDrawerObjectsSorting(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "11111111")
	drawer := env.seedDrawer(t, owner.DNI, "Escritorio", 5)
	objType := env.seedType(t, owner.DNI, "Varios")

	for _, name := range []string{"Zapato", "Abrigo", "Martillo"} {
		_, err := env.objects.CreateObject(owner.DNI, drawer.ID, ObjectInput{
			Name:         name,
			SizeConcept:  "MEDIUM",
			ObjectTypeID: objType.ID,
		})
		require.NoError(t, err)
	}

	sorted, err := env.objects.GetDrawerObjects(owner.DNI, drawer.ID, 0, 0, true)
	require.NoError(t, err)
	require.Len(t, sorted, 3)
	assert.Equal(t, "Abrigo", sorted[0].Name)
	assert.Equal(t, "Martillo", sorted[1].Name)
	assert.Equal(t, "Zapato", sorted[2].Name)
}
