package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/store"
)

type addCategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

// GetCategories returns category names in insertion order.
func GetCategories(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := st.ListCategories()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}
		c.JSON(http.StatusOK, names)
	}
}

// AddCategories inserts the names that do not exist yet. Duplicates in the
// request or the table are skipped, so the call is idempotent.
func AddCategories(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCategoriesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "categories est requis"})
			return
		}

		names, err := st.AddCategories(req.Categories)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "categories": names})
	}
}
