package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/cart"
	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/middleware"
)

// SetupRoutes is the single entry point that wires up every route group.
// The system routes (health, simulate, logs) sit outside the fault-check
// middleware; everything else passes through it.
func SetupRoutes(r *gin.Engine, db *gorm.DB, carts cart.Store, inj *faults.Injector, logs *logging.Streams) {
	r.Use(middleware.Session())
	r.Use(middleware.RequestLogger(logs))
	r.Use(middleware.Recovery(logs))

	api := r.Group("/api")
	SetupSystemRoutes(api, db, inj, logs)

	faulted := api.Group("", middleware.FaultCheck(inj, logs))
	SetupProductRoutes(faulted, db, logs)
	SetupCartRoutes(faulted, db, carts, logs)
	SetupOrderRoutes(faulted, db, carts, logs)
}
