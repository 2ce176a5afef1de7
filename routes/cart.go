package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/cart"
	cartControllers "github.com/imjasmeet/e-commerce-app/controllers/cart"
	"github.com/imjasmeet/e-commerce-app/logging"
)

func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, carts cart.Store, logs *logging.Streams) {
	group := rg.Group("/cart")
	{
		group.GET("", cartControllers.GetCart(db, carts, logs))
		group.POST("/add", cartControllers.AddToCart(db, carts, logs))
		group.DELETE("/remove/:id", cartControllers.RemoveFromCart(carts, logs))
		group.DELETE("/clear", cartControllers.ClearCart(carts, logs))
	}
}
