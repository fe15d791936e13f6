package repositories

import "inventory-server/entities"

// RecordStore is uniform CRUD over one persisted entity, keyed by its primary
// key. Every call runs in its own transaction scope; failures are rolled back
// and surfaced as StorageError. The store knows nothing about ownership or
// business rules. List operations treat a non-positive limit as unbounded;
// capping page sizes is the caller's concern.
type RecordStore[T any] interface {
	Create(rec *T) error
	GetByID(id any) (*T, error)
	GetMany(skip, limit int) ([]T, error)
	FilterBy(filters map[string]any, skip, limit int, orderBy string) ([]T, error)
	Update(id any, fields map[string]any) (*T, error)
	Delete(id any) (*T, error)
	Count(filters map[string]any) (int64, error)
}

// ObjectRepository couples object writes with the owning drawer's occupancy
// counter. Each method is one transaction: the counter change is a conditional
// update keyed by drawer id, so concurrent writers can never push a drawer
// past its capacity or below zero.
type ObjectRepository interface {
	CreateInDrawer(obj *entities.Object) error
	DeleteWithOccupancy(objectID uint) (*entities.Object, error)
	Move(objectID, targetDrawerID uint) (*entities.Object, error)
}

// DrawerRepository adds the multi-row operations a plain record store cannot
// express for drawers.
type DrawerRepository interface {
	DeleteCascade(drawerID uint) (*entities.Drawer, error)
}

// UserRepository adds the transactional purge behind user deletion.
type UserRepository interface {
	PurgeUser(dni string) (*entities.User, error)
}
