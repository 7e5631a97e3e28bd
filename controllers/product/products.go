package productcontroller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/models"
	"github.com/killjoy47/MniseCosmetics/store"
)

// GetProducts returns the full catalog.
func GetProducts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.ListProducts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// UpsertProduct creates or fully replaces a product. The request carries
// the whole record; an edit with missing fields overwrites them.
func UpsertProduct(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input store.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name est requis"})
			return
		}

		if _, err := st.UpsertProduct(input); err != nil {
			switch {
			case errors.Is(err, models.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			case errors.Is(err, models.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			}
			return
		}

		products, err := st.ListProducts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}
