package usecases

import (
	"fmt"

	"inventory-server/apperrors"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// ObjectTypeUseCase manages the shared taxonomy. Unlike drawers and objects,
// types are not owner-scoped: any authenticated caller may mutate any type.
// The acting user is still recorded in the audit trail.
type ObjectTypeUseCase struct {
	types   repositories.RecordStore[entities.ObjectType]
	actions *ActionHistoryUseCase
}

func NewObjectTypeUseCase(types repositories.RecordStore[entities.ObjectType], actions *ActionHistoryUseCase) *ObjectTypeUseCase {
	return &ObjectTypeUseCase{types: types, actions: actions}
}

// CreateObjectType adds a taxonomy entry with a store-unique name.
func (uc *ObjectTypeUseCase) CreateObjectType(userID, name string) (*entities.ObjectType, error) {
	if name == "" {
		return nil, apperrors.Validation("object type name is required")
	}
	n, err := uc.types.Count(map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperrors.Validation("object type %q already exists", name)
	}

	objType := &entities.ObjectType{Name: name}
	if err := uc.types.Create(objType); err != nil {
		return nil, err
	}

	uc.actions.Append(userID, entities.ActionCreateObjectType, fmt.Sprintf("Creación de tipo de objeto: %s", name))
	return objType, nil
}

// GetObjectType returns one type, or nil if absent.
func (uc *ObjectTypeUseCase) GetObjectType(typeID uint) (*entities.ObjectType, error) {
	return uc.types.GetByID(typeID)
}

// ListObjectTypes returns the taxonomy with pagination.
func (uc *ObjectTypeUseCase) ListObjectTypes(skip, limit int) ([]entities.ObjectType, error) {
	return uc.types.GetMany(skip, limit)
}

// UpdateObjectType renames a type, keeping names unique.
func (uc *ObjectTypeUseCase) UpdateObjectType(userID string, typeID uint, name string) (*entities.ObjectType, error) {
	existing, err := uc.types.GetByID(typeID)
	if err != nil || existing == nil {
		return nil, err
	}
	if name == "" || name == existing.Name {
		return existing, nil
	}
	n, err := uc.types.Count(map[string]any{"name": name})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, apperrors.Validation("object type %q already exists", name)
	}

	updated, err := uc.types.Update(typeID, map[string]any{"name": name})
	if err != nil || updated == nil {
		return nil, err
	}

	uc.actions.Append(userID, entities.ActionUpdateObjectType, fmt.Sprintf("Actualización de tipo de objeto ID: %d", typeID))
	return updated, nil
}

// DeleteObjectType removes a type by id.
func (uc *ObjectTypeUseCase) DeleteObjectType(userID string, typeID uint) (*entities.ObjectType, error) {
	deleted, err := uc.types.Delete(typeID)
	if err != nil || deleted == nil {
		return nil, err
	}

	uc.actions.Append(userID, entities.ActionDeleteObjectType, fmt.Sprintf("Eliminación de tipo de objeto ID: %d, Nombre: %s", typeID, deleted.Name))
	return deleted, nil
}
