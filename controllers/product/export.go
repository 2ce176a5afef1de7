package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/models"
	"github.com/imjasmeet/e-commerce-app/response"
)

// ExportProducts streams the catalog as an Excel workbook.
// GET /api/products/export
func ExportProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch products", err)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to create Excel sheet", err)
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range []string{"ID", "Name", "Description", "Price", "ImageURL", "Stock"} {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.Stock)
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")

		if err := file.Write(c.Writer); err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to write Excel file", err)
			return
		}
	}
}
