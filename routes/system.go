package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	systemControllers "github.com/imjasmeet/e-commerce-app/controllers/system"
	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
)

func SetupSystemRoutes(rg *gin.RouterGroup, db *gorm.DB, inj *faults.Injector, logs *logging.Streams) {
	rg.GET("/health", systemControllers.HealthCheck(db, inj))
	rg.GET("/simulate/:fault", systemControllers.ToggleSimulation(inj, logs))
	rg.GET("/logs", systemControllers.GetLogs(logs))
}
