package systemControllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/imjasmeet/e-commerce-app/database"
	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/models"
	"github.com/imjasmeet/e-commerce-app/response"
)

// HealthCheck reports store reachability, the product count and the
// current simulation toggles.
// GET /api/health
func HealthCheck(db *gorm.DB, inj *faults.Injector) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		dbState := "connected"
		var products int64

		switch {
		case inj.DBFailure:
			status = "degraded"
			dbState = "unavailable (simulated)"
		case database.Ping(db) != nil:
			status = "unhealthy"
			dbState = "disconnected"
		default:
			if err := db.Model(&models.Product{}).Count(&products).Error; err != nil {
				status = "unhealthy"
				dbState = "error"
			}
		}

		response.OK(c, http.StatusOK, "Health check", gin.H{
			"status":      status,
			"database":    dbState,
			"products":    products,
			"simulations": inj.States(),
		})
	}
}

// ToggleSimulation flips one fault toggle and reports its new state.
// GET /api/simulate/:fault
func ToggleSimulation(inj *faults.Injector, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("fault")
		enabled, err := inj.Toggle(name)
		if err != nil {
			response.Fail(c, http.StatusNotFound, "Unknown simulation", err)
			return
		}

		state := "disabled"
		if enabled {
			state = "enabled"
		}
		logs.Actions.WithFields(logrus.Fields{
			"operation": "toggle_simulation",
			"fault":     name,
			"enabled":   enabled,
			"client_ip": c.ClientIP(),
		}).Info("user action")
		response.OK(c, http.StatusOK, fmt.Sprintf("Simulation %s %s", name, state), gin.H{
			"simulation": name,
			"enabled":    enabled,
		})
	}
}

// GetLogs returns the tail of every log stream. Debugging surface; keep it
// off the public internet.
// GET /api/logs
func GetLogs(logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, http.StatusOK, "Log tail", gin.H{
			"logs": logs.Tail(logging.TailWindow),
		})
	}
}
