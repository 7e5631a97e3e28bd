package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killjoy47/MniseCosmetics/store"
	"github.com/tealeg/xlsx"
)

// ExportInventoryToExcel downloads the catalog as an XLSX inventory sheet.
func ExportInventoryToExcel(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.ListProducts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Erreur de stockage"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Inventaire")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Impossible de créer la feuille Excel"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"ID", "Nom", "Catégorie", "Prix", "Stock", "Stock de sécurité"} {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.SecurityStock)
		}

		c.Header("Content-Disposition", "attachment; filename=inventaire.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Impossible d'écrire le fichier Excel"})
			return
		}
	}
}
