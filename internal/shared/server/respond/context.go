package respond

import "github.com/gin-gonic/gin"

// Keys under which request-scoped identifiers live on the gin context.
const (
	RequestIDKey   = "requestId"
	ScreeningIDKey = "screeningId"
)

// RequestID returns the id set by the request id middleware, if any.
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(RequestIDKey)
}

// SetScreeningID tags the request with the screening it produced or read, so
// access and error logs can be joined to the screening record.
func SetScreeningID(c *gin.Context, id string) {
	if c == nil || id == "" {
		return
	}
	c.Set(ScreeningIDKey, id)
}

// ScreeningID returns the id recorded by SetScreeningID.
func ScreeningID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(ScreeningIDKey)
}
