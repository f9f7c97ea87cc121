package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/craftedge/storefront/internal/hash"
	"github.com/craftedge/storefront/internal/models"
	"github.com/craftedge/storefront/internal/token"
)

var testSecret = []byte("test-secret")

func initTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Comment{}, &models.Order{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	return db
}

func testTokens() *token.Service {
	return &token.Service{Secret: testSecret}
}

func jsonContext(t *testing.T, e *echo.Echo, method, path string, payload any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireHTTPError(t *testing.T, err error, code int) *echo.HTTPError {
	t.Helper()

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected HTTPError, got %v", err)
	require.Equal(t, code, he.Code)
	return he
}

func createUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Email:        email,
		PasswordHash: pwHash,
		FirstName:    "A",
		LastName:     "B",
		Address:      "1 Rd",
		City:         "X",
		State:        "Y",
		Pincode:      "400001",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()

	raw, err := testTokens().Issue(token.Claims{UserID: user.ID, Email: user.Email})
	require.NoError(t, err)
	return &http.Cookie{Name: AuthCookieName, Value: raw}
}

func storedHash(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, id).Error)
	return user.PasswordHash
}
