package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIdHeader = "X-Request-Id"

// RequestId tags every request with a correlation id, keeping one supplied by
// an upstream proxy.
func RequestId(ctx *gin.Context) {
	rid := ctx.Request.Header.Get(requestIdHeader)
	if rid == "" {
		rid = uuid.NewString()
	}
	ctx.Set("request_id", rid)
	ctx.Writer.Header().Set(requestIdHeader, rid)
}
