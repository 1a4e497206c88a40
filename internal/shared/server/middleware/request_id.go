package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-screener/internal/shared/server/respond"
)

const requestIDHeader = "X-Request-Id"

// Inbound ids are echoed only when they are short and header-safe.
var validRequestID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// RequestID attaches a request id to the context and the response header. A
// well-formed X-Request-Id from the caller is reused; otherwise a UUID is
// generated.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if !validRequestID.MatchString(id) {
			id = uuid.NewString()
		}
		c.Set(respond.RequestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext fetches the id stored by RequestID.
func RequestIDFromContext(c *gin.Context) string {
	return respond.RequestID(c)
}

// ScreeningIDFromContext fetches the screening id a handler tagged the request with.
func ScreeningIDFromContext(c *gin.Context) string {
	return respond.ScreeningID(c)
}
