package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ContextRequestIDKey stores the request id in Gin context.
	ContextRequestIDKey = "request_id"
	requestIDHeader     = "X-Request-ID"
)

// RequestID tags each request with a UUID for log correlation. An
// inbound X-Request-ID is honored when present.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		rid := ctx.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		ctx.Set(ContextRequestIDKey, rid)
		ctx.Writer.Header().Set(requestIDHeader, rid)
		ctx.Next()
	}
}
