package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the opaque visitor session ID.
const SessionCookieName = "fx_session"

// sessionCookieMaxAge matches the session store expiry.
const sessionCookieMaxAge = int(30 * 24 * time.Hour / time.Second)

// SessionMiddleware ensures every request carries a visitor session ID,
// minting one when the cookie is absent. The ID is opaque; everything the
// core stores against it lives in the session repository.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookieName, sessionID, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(string(sessionIDKey), sessionID)
		c.Next()
	}
}
