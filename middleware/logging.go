package middleware

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/imjasmeet/e-commerce-app/logging"
	"github.com/imjasmeet/e-commerce-app/response"
)

// RequestLogger emits the request-received event for every call.
func RequestLogger(logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		logs.Request(c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Request.UserAgent())
		c.Next()
	}
}

// Recovery is the envelope's catch-all boundary: any panic inside an
// operation is logged with its category and converted into a generic 500
// envelope instead of escaping to the transport layer.
func Recovery(logs *logging.Streams) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				category := "panic"
				if _, ok := r.(runtime.Error); ok {
					category = "null_pointer"
				}
				logs.Error(category, fmt.Sprint(r), c.ClientIP(), c.Request.URL.Path, c.Request.Method)
				response.Fail(c, http.StatusInternalServerError, "Internal server error", nil)
			}
		}()
		c.Next()
	}
}
