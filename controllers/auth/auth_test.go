package authcontroller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/store"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Credential{}))

	st := store.New(db, nil)
	require.NoError(t, st.Seed())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/login", Login(st))
	r.POST("/api/reset-password", ResetPassword(st))
	return r, st
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, _ := newAuthRouter(t)

	t.Run("ValidPasswordReturnsToken", func(t *testing.T) {
		w := postJSON(t, r, "/api/login", gin.H{"role": "admin", "password": "admin"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Role    string `json:"role"`
			Token   string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.True(t, resp.Success)
		require.Equal(t, "admin", resp.Role)
		require.NotEmpty(t, resp.Token)
	})

	t.Run("WrongPasswordIs401", func(t *testing.T) {
		w := postJSON(t, r, "/api/login", gin.H{"role": "admin", "password": "nope"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Contains(t, w.Body.String(), "Mot de passe incorrect")
	})

	t.Run("UnknownRoleIs401", func(t *testing.T) {
		w := postJSON(t, r, "/api/login", gin.H{"role": "ghost", "password": "admin"})
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("MissingFieldsIs400", func(t *testing.T) {
		w := postJSON(t, r, "/api/login", gin.H{"role": "admin"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("WrongMasterKeyIs403AndChangesNothing", func(t *testing.T) {
		r, st := newAuthRouter(t)

		w := postJSON(t, r, "/api/reset-password", gin.H{
			"masterKey": "wrong", "newAdminPwd": "hacked", "newSellerPwd": "hacked",
		})
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Contains(t, w.Body.String(), "Code Master incorrect")

		require.NoError(t, st.Authenticate(models.RoleAdmin, "admin"))
		require.NoError(t, st.Authenticate(models.RoleSeller, "123"))
	})

	t.Run("ValidMasterKeyUpdatesPasswords", func(t *testing.T) {
		r, st := newAuthRouter(t)

		w := postJSON(t, r, "/api/reset-password", gin.H{
			"masterKey": "0000", "newAdminPwd": "secret1", "newSellerPwd": "secret2",
		})
		require.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, st.Authenticate(models.RoleAdmin, "secret1"))
		require.NoError(t, st.Authenticate(models.RoleSeller, "secret2"))
		require.ErrorIs(t, st.Authenticate(models.RoleAdmin, "admin"), models.ErrForbidden)
	})
}
