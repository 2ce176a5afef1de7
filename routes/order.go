package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/cart"
	orderControllers "github.com/imjasmeet/e-commerce-app/controllers/order"
	"github.com/imjasmeet/e-commerce-app/logging"
)

func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, carts cart.Store, logs *logging.Streams) {
	orders := rg.Group("/orders")
	{
		orders.POST("", orderControllers.Checkout(db, carts, logs))
		orders.GET("", orderControllers.GetOrders(db, logs))
		orders.GET("/:id", orderControllers.GetOrderByID(db, logs))
	}
}
