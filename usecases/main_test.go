package usecases

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-server/db"
	"inventory-server/entities"
	"inventory-server/repositories"
)

// testEnv wires the full use case stack against an in-memory database.
type testEnv struct {
	database db.Database
	actions  *ActionHistoryUseCase
	users    *UserUseCase
	drawers  *DrawerUseCase
	objects  *ObjectUseCase
	types    *ObjectTypeUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// A named shared-cache database keeps the schema alive across the pooled
	// connections while staying private to this test.
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// SQLite serializes writers anyway; a single connection avoids spurious
	// lock errors under concurrent transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))

	database := &db.GormDatabase{DB: gdb}

	userStore := repositories.NewRecordStore[entities.User](database)
	drawerStore := repositories.NewRecordStore[entities.Drawer](database)
	objectStore := repositories.NewRecordStore[entities.Object](database)
	typeStore := repositories.NewRecordStore[entities.ObjectType](database)
	actionStore := repositories.NewRecordStore[entities.ActionHistory](database)

	actions := NewActionHistoryUseCase(actionStore)
	return &testEnv{
		database: database,
		actions:  actions,
		users:    NewUserUseCase(userStore, repositories.NewUserRepository(database), actions),
		drawers:  NewDrawerUseCase(drawerStore, repositories.NewDrawerRepository(database), actions),
		objects:  NewObjectUseCase(objectStore, drawerStore, typeStore, repositories.NewObjectRepository(database), actions),
		types:    NewObjectTypeUseCase(typeStore, actions),
	}
}

func (e *testEnv) seedUser(t *testing.T, dni string) *entities.User {
	t.Helper()
	user, err := e.users.CreateUser(UserInput{
		DNI:      dni,
		Username: "user-" + dni,
		Email:    "user-" + dni + "@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)
	return user
}

func (e *testEnv) seedDrawer(t *testing.T, ownerID, name string, maxObj int) *entities.Drawer {
	t.Helper()
	drawer, err := e.drawers.CreateDrawer(ownerID, DrawerInput{Name: name, MaxObj: maxObj})
	require.NoError(t, err)
	return drawer
}

func (e *testEnv) seedType(t *testing.T, ownerID, name string) *entities.ObjectType {
	t.Helper()
	objType, err := e.types.CreateObjectType(ownerID, name)
	require.NoError(t, err)
	return objType
}
