package handler

import (
	"net/http"

	"github.com/RenzoMaggi16/vestra/internal/controller"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID for log correlation, generating
// one when the client did not send one.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set("request_id", id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

// RequireUser scopes ledger endpoints to the authenticated caller.
// Authentication itself happens upstream; this trusts the X-User-ID header
// the gateway sets.
func RequireUser() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader("X-User-ID")
		if id == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, controller.APIError{Error: "missing X-User-ID header"})
			return
		}
		ctx.Set(controller.UserIDKey, id)
		ctx.Next()
	}
}

// CORS allows the configured frontend origin.
func CORS(origin string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Content-Type, X-User-ID, X-Request-ID")

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	}
}
