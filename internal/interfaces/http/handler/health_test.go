package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newHealthDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)

	return gormDB, mock
}

func serveHealth(db *gorm.DB, jwtSecretPresent bool) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHealthHandler(db, jwtSecretPresent).Register(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	return w
}

func TestHealth(t *testing.T) {
	t.Run("reports ok when all checks pass", func(t *testing.T) {
		db, mock := newHealthDB(t)
		mock.ExpectPing()

		w := serveHealth(db, true)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		assert.Contains(t, w.Body.String(), `"database":"up"`)
	})

	t.Run("degrades when the database is unreachable", func(t *testing.T) {
		db, mock := newHealthDB(t)
		mock.ExpectPing().WillReturnError(assert.AnError)

		w := serveHealth(db, true)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"down"`)
	})

	t.Run("degrades when the auth secret is missing", func(t *testing.T) {
		db, mock := newHealthDB(t)
		mock.ExpectPing()

		w := serveHealth(db, false)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"auth_secret":"missing"`)
	})
}
