package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/imjasmeet/e-commerce-app/controllers/product"
	"github.com/imjasmeet/e-commerce-app/logging"
)

func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, logs *logging.Streams) {
	products := rg.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db, logs))
		products.GET("/export", productcontroller.ExportProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db, logs))
	}
}
