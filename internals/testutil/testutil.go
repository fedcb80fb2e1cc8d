package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "capstonehub_backend/internals/databases"
	userModel "capstonehub_backend/internals/features/users/user/model"
	helper "capstonehub_backend/internals/helpers"
)

// OpenDB returns an isolated in-memory database migrated to the full
// schema. Each test gets its own named database so parallel tests do
// not share state.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// NewApp returns a fiber app whose requests carry the principal from
// the X-Test-User / X-Test-Role headers, standing in for the JWT
// middleware.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: helper.FiberErrorHandler,
	})
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		if role := c.Get("X-Test-Role"); role != "" {
			c.Locals("user_role", role)
		}
		return c.Next()
	})
	return app
}

// Principal identifies the acting user for a test request.
type Principal struct {
	ID   uuid.UUID
	Role string
}

// DoJSON performs a request as the given principal and returns the
// response with its decoded body.
func DoJSON(t *testing.T, app *fiber.App, method, path string, principal *Principal, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		req.Header.Set("X-Test-User", principal.ID.String())
		req.Header.Set("X-Test-Role", principal.Role)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}

// SeedUser inserts a user with the given role and returns it.
func SeedUser(t *testing.T, db *gorm.DB, role, name string) *userModel.UserModel {
	t.Helper()

	u := &userModel.UserModel{
		ID:       uuid.New(),
		UserName: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8]),
		FullName: name,
		Email:    fmt.Sprintf("%s-%s@example.edu", name, uuid.NewString()[:8]),
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
