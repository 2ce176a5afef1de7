package productcontroller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/middleware"
	"github.com/imjasmeet/e-commerce-app/models"
	"github.com/imjasmeet/e-commerce-app/response"
)

// GetProducts returns the whole catalog.
// GET /api/products
func GetProducts(db *gorm.DB, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var products []models.Product
		if err := db.Find(&products).Error; err != nil {
			response.Fail(c, http.StatusInternalServerError, "Failed to fetch products", err)
			return
		}

		logs.Record(c, middleware.SessionID(c), "list_products", start, logrus.Fields{
			"count": len(products),
		})
		response.OK(c, http.StatusOK, "Products retrieved", gin.H{"products": products})
	}
}

// GetProductByID returns a single product.
// GET /api/products/:id
func GetProductByID(db *gorm.DB, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			response.Fail(c, http.StatusBadRequest, "Invalid product ID", err)
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.Fail(c, http.StatusNotFound, "Product not found", err)
			} else {
				response.Fail(c, http.StatusInternalServerError, "Failed to retrieve product", err)
			}
			return
		}

		logs.Record(c, middleware.SessionID(c), "get_product", start, logrus.Fields{
			"product_id": product.ID,
		})
		response.OK(c, http.StatusOK, "Product retrieved", gin.H{"product": product})
	}
}
