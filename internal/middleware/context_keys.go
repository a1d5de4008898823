package middleware

import "github.com/gin-gonic/gin"

// sessionIDKey is the key used to store the visitor's session ID in the Gin context.
// Using a custom type prevents collisions.
const sessionIDKey = contextKey("sessionID")

// GetSessionIDFromContext retrieves the visitor session ID from the Gin context.
// It returns the session ID and a boolean indicating if it was found.
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	sessionIDVal, exists := c.Get(string(sessionIDKey))
	if !exists {
		return "", false
	}

	sessionID, ok := sessionIDVal.(string)
	if !ok {
		// This should not happen if the session middleware sets it correctly
		return "", false
	}

	return sessionID, true
}
