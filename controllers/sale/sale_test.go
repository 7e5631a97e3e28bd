package salecontroller

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

func newSaleRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Sale{}, &models.SaleItem{},
	))

	st := store.New(db, nil)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/sell", Sell(st))
	r.GET("/api/sales", ListSales(st))
	return r, st
}

func TestSellEndpoint(t *testing.T) {
	r, st := newSaleRouter(t)
	bella, err := st.UpsertProduct(store.ProductInput{Name: "Bella", Price: 1000, Stock: 5})
	require.NoError(t, err)

	sell := func(body any) *httptest.ResponseRecorder {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/sell", bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("RecordsSale", func(t *testing.T) {
		w := sell(gin.H{
			"items":      []gin.H{{"productId": bella.ID, "quantity": 2}},
			"totalPrice": 2000,
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Vente enregistrée")
	})

	t.Run("OversellIs409", func(t *testing.T) {
		w := sell(gin.H{
			"items":      []gin.H{{"productId": bella.ID, "quantity": 99}},
			"totalPrice": 99000,
		})
		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), "Bella")
	})

	t.Run("UnknownProductIs404", func(t *testing.T) {
		w := sell(gin.H{
			"items":      []gin.H{{"productId": 404, "quantity": 1}},
			"totalPrice": 100,
		})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("MissingItemsIs400", func(t *testing.T) {
		w := sell(gin.H{"totalPrice": 100})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ListSalesReturnsHistory", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sales", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var sales []models.Sale
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sales))
		require.Len(t, sales, 1)
		require.Equal(t, 2000.0, sales[0].TotalPrice)
	})

	t.Run("BadDateFilterIs400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/sales?date=demain", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}
