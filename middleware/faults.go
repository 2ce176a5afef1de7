package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imjasmeet/e-commerce-app/faults"
	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/response"
)

// FaultCheck consults the injector before every domain operation. The
// simulate, health and log endpoints are mounted outside this middleware
// so an enabled failure can still be toggled off.
func FaultCheck(inj *faults.Injector, logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := inj.Check(); err != nil {
			logs.Error("simulated", err.Error(), c.ClientIP(), c.Request.URL.Path, c.Request.Method)
			response.Fail(c, http.StatusInternalServerError, "Internal server error", err)
			return
		}
		c.Next()
	}
}
