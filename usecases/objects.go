package usecases

import (
	"errors"
	"fmt"

	"inventory-server/apperrors"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// ObjectInput is the typed payload for creating or updating an object.
// Zero-value fields are treated as absent on update.
type ObjectInput struct {
	Name         string
	SizeConcept  string
	ObjectTypeID uint
}

type ObjectUseCase struct {
	objects repositories.RecordStore[entities.Object]
	drawers repositories.RecordStore[entities.Drawer]
	types   repositories.RecordStore[entities.ObjectType]
	repo    repositories.ObjectRepository
	actions *ActionHistoryUseCase
}

func NewObjectUseCase(
	objects repositories.RecordStore[entities.Object],
	drawers repositories.RecordStore[entities.Drawer],
	types repositories.RecordStore[entities.ObjectType],
	repo repositories.ObjectRepository,
	actions *ActionHistoryUseCase,
) *ObjectUseCase {
	return &ObjectUseCase{objects: objects, drawers: drawers, types: types, repo: repo, actions: actions}
}

// ownedDrawer loads a drawer and enforces the ownership chain. Absence is a
// validation failure; a drawer held by another user is an ownership one.
func (uc *ObjectUseCase) ownedDrawer(ownerID string, drawerID uint) (*entities.Drawer, error) {
	drawer, err := uc.drawers.GetByID(drawerID)
	if err != nil {
		return nil, err
	}
	if drawer == nil {
		return nil, apperrors.Validation("drawer with ID %d not found", drawerID)
	}
	if drawer.UserID != ownerID {
		return nil, apperrors.Ownership("drawer with ID %d does not belong to this user", drawerID)
	}
	return drawer, nil
}

// CreateObject stores a new object in a drawer owned by ownerID. The
// capacity check here fails fast; the decisive guard is the conditional
// occupancy increment inside the repository transaction.
func (uc *ObjectUseCase) CreateObject(ownerID string, drawerID uint, in ObjectInput) (*entities.Object, error) {
	drawer, err := uc.ownedDrawer(ownerID, drawerID)
	if err != nil {
		return nil, err
	}
	if !drawer.HasCapacity() {
		return nil, apperrors.Validation("drawer with ID %d is full", drawerID)
	}

	if in.ObjectTypeID == 0 {
		return nil, apperrors.Validation("object type ID is required")
	}
	objType, err := uc.types.GetByID(in.ObjectTypeID)
	if err != nil {
		return nil, err
	}
	if objType == nil {
		return nil, apperrors.Validation("object type with ID %d not found", in.ObjectTypeID)
	}

	if in.Name == "" {
		return nil, apperrors.Validation("object name is required")
	}
	size, err := entities.ParseSizeConcept(in.SizeConcept)
	if err != nil {
		return nil, err
	}

	obj := &entities.Object{
		Name:         in.Name,
		SizeConcept:  size,
		DrawerID:     drawerID,
		ObjectTypeID: in.ObjectTypeID,
	}
	if err := uc.repo.CreateInDrawer(obj); err != nil {
		if errors.Is(err, repositories.ErrDrawerFull) {
			return nil, apperrors.Validation("drawer with ID %d is full", drawerID)
		}
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionCreateObject, fmt.Sprintf("Creación de objeto: %s en cajón ID: %d", obj.Name, drawerID))
	return obj, nil
}

// GetObject returns an object by id, or nil if absent. No ownership check;
// callers use it through owner-scoped paths.
func (uc *ObjectUseCase) GetObject(objectID uint) (*entities.Object, error) {
	return uc.objects.GetByID(objectID)
}

// GetDrawerObjects lists the objects in one of ownerID's drawers, optionally
// sorted by name.
func (uc *ObjectUseCase) GetDrawerObjects(ownerID string, drawerID uint, skip, limit int, sortByName bool) ([]entities.Object, error) {
	if _, err := uc.ownedDrawer(ownerID, drawerID); err != nil {
		return nil, err
	}
	orderBy := ""
	if sortByName {
		orderBy = "name"
	}
	return uc.objects.FilterBy(map[string]any{"drawer_id": drawerID}, skip, limit, orderBy)
}

// GetObjectsByDrawer lists every object in a drawer with no ownership check.
// Collaborating controls that already verified the caller use this.
func (uc *ObjectUseCase) GetObjectsByDrawer(drawerID uint) ([]entities.Object, error) {
	return uc.objects.FilterBy(map[string]any{"drawer_id": drawerID}, 0, 0, "id")
}

// UpdateObject applies a partial update after walking the ownership chain
// object → drawer → user.
func (uc *ObjectUseCase) UpdateObject(ownerID string, objectID uint, in ObjectInput) (*entities.Object, error) {
	obj, err := uc.objects.GetByID(objectID)
	if err != nil || obj == nil {
		return nil, err
	}
	if _, err := uc.ownedDrawer(ownerID, obj.DrawerID); err != nil {
		return nil, apperrors.Ownership("object with ID %d is in a drawer that does not belong to this user", objectID)
	}

	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.SizeConcept != "" {
		size, err := entities.ParseSizeConcept(in.SizeConcept)
		if err != nil {
			return nil, err
		}
		fields["size_concept"] = size
	}
	if in.ObjectTypeID != 0 {
		objType, err := uc.types.GetByID(in.ObjectTypeID)
		if err != nil {
			return nil, err
		}
		if objType == nil {
			return nil, apperrors.Validation("object type with ID %d not found", in.ObjectTypeID)
		}
		fields["object_type_id"] = in.ObjectTypeID
	}
	if len(fields) == 0 {
		return obj, nil
	}

	updated, err := uc.objects.Update(objectID, fields)
	if err != nil || updated == nil {
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionUpdateObject, fmt.Sprintf("Actualización de objeto ID: %d", objectID))
	return updated, nil
}

// DeleteObject removes an object owned (through its drawer) by ownerID and
// decrements the drawer's occupancy.
func (uc *ObjectUseCase) DeleteObject(ownerID string, objectID uint) (*entities.Object, error) {
	obj, err := uc.objects.GetByID(objectID)
	if err != nil || obj == nil {
		return nil, err
	}
	if _, err := uc.ownedDrawer(ownerID, obj.DrawerID); err != nil {
		return nil, apperrors.Ownership("object with ID %d is in a drawer that does not belong to this user", objectID)
	}

	deleted, err := uc.repo.DeleteWithOccupancy(objectID)
	if err != nil || deleted == nil {
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionDeleteObject, fmt.Sprintf("Eliminación de objeto ID: %d, Nombre: %s", objectID, deleted.Name))
	return deleted, nil
}

// MoveObject re-homes an object into another drawer owned by the same user.
// Both drawers must belong to ownerID and the target must have room; the
// counter updates and the re-point happen in one repository transaction, so
// a failure leaves source, target, and object untouched.
func (uc *ObjectUseCase) MoveObject(ownerID string, objectID, targetDrawerID uint) (*entities.Object, error) {
	obj, err := uc.objects.GetByID(objectID)
	if err != nil || obj == nil {
		return nil, err
	}
	if _, err := uc.ownedDrawer(ownerID, obj.DrawerID); err != nil {
		return nil, apperrors.Ownership("object with ID %d is in a drawer that does not belong to this user", objectID)
	}
	target, err := uc.ownedDrawer(ownerID, targetDrawerID)
	if err != nil {
		return nil, err
	}
	if !target.HasCapacity() {
		return nil, apperrors.Validation("drawer with ID %d is full", targetDrawerID)
	}

	moved, err := uc.repo.Move(objectID, targetDrawerID)
	if err != nil {
		if errors.Is(err, repositories.ErrDrawerFull) {
			return nil, apperrors.Validation("drawer with ID %d is full", targetDrawerID)
		}
		return nil, err
	}
	if moved == nil {
		return nil, nil
	}

	uc.actions.Append(ownerID, entities.ActionMoveObject, fmt.Sprintf("Mover objeto ID: %d del cajón %d al cajón %d", objectID, obj.DrawerID, targetDrawerID))
	return moved, nil
}

// FindDuplicateObjects groups a drawer's objects by (name, type, size) and
// returns the ids of every group with more than one member, in creation
// order within each group.
func (uc *ObjectUseCase) FindDuplicateObjects(drawerID uint) ([][]uint, error) {
	objects, err := uc.GetObjectsByDrawer(drawerID)
	if err != nil {
		return nil, err
	}

	type dupKey struct {
		name string
		typ  uint
		size entities.SizeConcept
	}
	groups := map[dupKey][]uint{}
	var order []dupKey
	for _, obj := range objects {
		key := dupKey{name: obj.Name, typ: obj.ObjectTypeID, size: obj.SizeConcept}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], obj.ID)
	}

	var duplicates [][]uint
	for _, key := range order {
		if ids := groups[key]; len(ids) > 1 {
			duplicates = append(duplicates, ids)
		}
	}
	return duplicates, nil
}

// SortObjectsByType is a declared placeholder: it reports success without
// reordering anything. TODO: persist a drawer-level ordering once the
// frontend defines one.
func (uc *ObjectUseCase) SortObjectsByType(drawerID uint) (bool, error) {
	return true, nil
}

// SortObjectsBySize is a declared placeholder, same as SortObjectsByType.
func (uc *ObjectUseCase) SortObjectsBySize(drawerID uint) (bool, error) {
	return true, nil
}
