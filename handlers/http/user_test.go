package httpHandler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"inventory-server/auth"
	"inventory-server/db"
	"inventory-server/entities"
	"inventory-server/repositories"
	"inventory-server/usecases"
)

func newAuthAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(gdb))

	database := &db.GormDatabase{DB: gdb}
	userStore := repositories.NewRecordStore[entities.User](database)
	actionStore := repositories.NewRecordStore[entities.ActionHistory](database)
	actions := usecases.NewActionHistoryUseCase(actionStore)
	users := usecases.NewUserUseCase(userStore, repositories.NewUserRepository(database), actions)

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := NewUserHandler(users, tokens)

	r := gin.New()
	r.POST("/api/v1/auth/register", handler.Register)
	r.POST("/api/v1/auth/login", handler.Login)
	r.GET("/api/v1/users/me", auth.Middleware(tokens), handler.Me)
	return r
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const registerBody = `{"dni":"11111111","username":"ana","email":"ana@example.com","password":"s3cret"}`

func TestRegisterIssuesToken(t *testing.T) {
	router := newAuthAPI(t)

	w := postJSON(router, "/api/v1/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.Contains(t, w.Body.String(), `"dni":"11111111"`)
}

func TestRegisterRejectsBadPayload(t *testing.T) {
	router := newAuthAPI(t)

	for name, body := range map[string]string{
		"missing fields": `{"dni":"11111111"}`,
		"bad email":      `{"dni":"11111111","username":"ana","email":"not-an-email","password":"s3cret"}`,
		"not json":       `dni=11111111`,
	} {
		t.Run(name, func(t *testing.T) {
			w := postJSON(router, "/api/v1/auth/register", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestRegisterDuplicateDNI(t *testing.T) {
	router := newAuthAPI(t)

	w := postJSON(router, "/api/v1/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/v1/auth/register",
		`{"dni":"11111111","username":"otra","email":"otra@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndAccessProtectedRoute(t *testing.T) {
	router := newAuthAPI(t)

	w := postJSON(router, "/api/v1/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/v1/auth/login", `{"username":"ana","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+loginResp.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ana@example.com"`)
	// The stored hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginFailuresAreUniform(t *testing.T) {
	router := newAuthAPI(t)

	w := postJSON(router, "/api/v1/auth/register", registerBody)
	require.Equal(t, http.StatusCreated, w.Code)

	wrongPassword := postJSON(router, "/api/v1/auth/login", `{"username":"ana","password":"wrong"}`)
	unknownUser := postJSON(router, "/api/v1/auth/login", `{"username":"nadie","password":"s3cret"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newAuthAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
