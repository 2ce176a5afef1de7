package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the cart session identifier.
const SessionCookie = "session_id"

const sessionContextKey = "session_id"

const sessionMaxAge = 7 * 24 * 60 * 60

// Session assigns every client a session id. Carts are keyed by it.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(SessionCookie, sid, sessionMaxAge, "/", "", false, true)
		}
		c.Set(sessionContextKey, sid)
		c.Next()
	}
}

// SessionID returns the session id set by Session, or "" when the
// middleware did not run.
func SessionID(c *gin.Context) string {
	if v, ok := c.Get(sessionContextKey); ok {
		if sid, ok := v.(string); ok {
			return sid
		}
	}
	return ""
}
