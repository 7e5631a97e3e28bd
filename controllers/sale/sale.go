package salecontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/store"
)

type sellRequest struct {
	Items        []store.SaleLine `json:"items" binding:"required"`
	TotalPrice   float64          `json:"totalPrice"`
	ClientNumber string           `json:"clientNumber"`
}

// Sell records a multi-item sale. The whole sale succeeds or nothing moves.
func Sell(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sellRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "items est requis"})
			return
		}

		sale, err := st.Sell(req.Items, req.TotalPrice, req.ClientNumber)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, models.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, models.ErrInsufficientStock):
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, models.ErrTransient):
				c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Vente enregistrée", "sale": sale})
	}
}

// ListSales returns sales newest first, optionally for one UTC day
// (?date=2006-01-02).
func ListSales(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var day *time.Time
		if dateStr := c.Query("date"); dateStr != "" {
			parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "date invalide, format attendu 2006-01-02"})
				return
			}
			day = &parsed
		}

		sales, err := st.ListSales(day)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}
