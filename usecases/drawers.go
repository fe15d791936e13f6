package usecases

import (
	"fmt"

	"inventory-server/apperrors"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// DrawerInput is the typed payload for creating or updating a drawer.
// Zero-value fields are treated as absent on update.
type DrawerInput struct {
	Name   string
	MaxObj int
}

type DrawerUseCase struct {
	drawers repositories.RecordStore[entities.Drawer]
	repo    repositories.DrawerRepository
	actions *ActionHistoryUseCase
}

func NewDrawerUseCase(drawers repositories.RecordStore[entities.Drawer], repo repositories.DrawerRepository, actions *ActionHistoryUseCase) *DrawerUseCase {
	return &DrawerUseCase{drawers: drawers, repo: repo, actions: actions}
}

// CreateDrawer creates a drawer for ownerID. Occupancy always starts at 0.
func (uc *DrawerUseCase) CreateDrawer(ownerID string, in DrawerInput) (*entities.Drawer, error) {
	if in.Name == "" {
		return nil, apperrors.Validation("drawer name is required")
	}
	if in.MaxObj <= 0 {
		return nil, apperrors.Validation("drawer capacity must be a positive number")
	}

	drawer := &entities.Drawer{
		Name:      in.Name,
		MaxObj:    in.MaxObj,
		ActualObj: 0,
		UserID:    ownerID,
	}
	if err := uc.drawers.Create(drawer); err != nil {
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionCreateDrawer, fmt.Sprintf("Creación de cajón: %s", drawer.Name))
	return drawer, nil
}

// GetDrawer returns the drawer only when it exists and belongs to ownerID;
// otherwise nil. Absent and foreign drawers are indistinguishable to the
// caller.
func (uc *DrawerUseCase) GetDrawer(ownerID string, drawerID uint) (*entities.Drawer, error) {
	drawer, err := uc.drawers.GetByID(drawerID)
	if err != nil {
		return nil, err
	}
	if drawer == nil || drawer.UserID != ownerID {
		return nil, nil
	}
	return drawer, nil
}

// ListDrawers returns ownerID's drawers with pagination.
func (uc *DrawerUseCase) ListDrawers(ownerID string, skip, limit int) ([]entities.Drawer, error) {
	return uc.drawers.FilterBy(map[string]any{"user_id": ownerID}, skip, limit, "id")
}

// UpdateDrawer applies a partial update, failing closed when the drawer is
// absent or owned by someone else. Shrinking capacity below the current
// occupancy is rejected to keep the occupancy invariant.
func (uc *DrawerUseCase) UpdateDrawer(ownerID string, drawerID uint, in DrawerInput) (*entities.Drawer, error) {
	drawer, err := uc.GetDrawer(ownerID, drawerID)
	if err != nil || drawer == nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.MaxObj > 0 {
		if in.MaxObj < drawer.ActualObj {
			return nil, apperrors.Validation("capacity %d is below current occupancy %d", in.MaxObj, drawer.ActualObj)
		}
		fields["max_obj"] = in.MaxObj
	}
	if len(fields) == 0 {
		return drawer, nil
	}

	updated, err := uc.drawers.Update(drawerID, fields)
	if err != nil || updated == nil {
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionUpdateDrawer, fmt.Sprintf("Actualización de cajón ID: %d", drawerID))
	return updated, nil
}

// DeleteDrawer removes the drawer and its objects, failing closed on absent
// or foreign drawers.
func (uc *DrawerUseCase) DeleteDrawer(ownerID string, drawerID uint) (*entities.Drawer, error) {
	drawer, err := uc.GetDrawer(ownerID, drawerID)
	if err != nil || drawer == nil {
		return nil, err
	}

	deleted, err := uc.repo.DeleteCascade(drawerID)
	if err != nil || deleted == nil {
		return nil, err
	}

	uc.actions.Append(ownerID, entities.ActionDeleteDrawer, fmt.Sprintf("Eliminación de cajón ID: %d, Nombre: %s", drawerID, deleted.Name))
	return deleted, nil
}

// RegisterAction records a drawer-scoped action on behalf of a collaborating
// control, e.g. the recommendation flow.
func (uc *DrawerUseCase) RegisterAction(drawerID uint, ownerID, actionType, details string) {
	uc.actions.Append(ownerID, actionType, fmt.Sprintf("%s (cajón ID: %d)", details, drawerID))
}
