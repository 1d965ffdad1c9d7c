package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pehlione.com/admin/internal/apiclient"
)

const (
	HeaderRequestID = apiclient.HeaderRequestID
	CtxKeyRequestID = "request_id"

	maxRequestIDLen = 128
)

// RequestID adopts a well-formed incoming X-Request-ID or mints a UUID. The id
// is echoed on the response and travels with the request context to every
// backend call.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if !validRequestID(rid) {
			rid = uuid.NewString()
		}

		c.Set(CtxKeyRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Request = c.Request.WithContext(apiclient.WithRequestID(c.Request.Context(), rid))

		c.Next()
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(CtxKeyRequestID)
}

// printable ASCII only, so the id is safe to log and forward
func validRequestID(s string) bool {
	if s == "" || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x21 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
