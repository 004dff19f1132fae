package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

const (
	// ContextUserIDKey stores the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
	// ContextUserNameKey stores the display name inside Gin context.
	ContextUserNameKey = "user_name"
)

// SessionLoader resolves the session cookie, if any, into the request
// context. It never rejects: anonymous requests simply carry no user.
func SessionLoader() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			ctx.Next()
			return
		}
		claims, err := utils.ParseSession(token)
		if err != nil {
			// Stale or tampered cookie; treat as anonymous.
			utils.ClearSession(ctx)
			ctx.Next()
			return
		}
		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Set(ContextUserNameKey, claims.Name)
		ctx.Next()
	}
}

// LoginRequired redirects anonymous callers to the login page with a
// flash prompt. Runs after SessionLoader.
func LoginRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := CurrentUserID(ctx); !ok {
			utils.Flash(ctx, "You need to login or register to comment.")
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// AdminOnly rejects everyone but the fixed admin account with 403 before
// any handler logic runs.
func AdminOnly() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := CurrentUserID(ctx)
		if !ok || userID != services.AdminUserID {
			ctx.AbortWithStatus(http.StatusForbidden)
			return
		}
		ctx.Next()
	}
}

// CurrentUserID returns the authenticated user's id, when present.
func CurrentUserID(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// CurrentUserName returns the authenticated user's display name.
func CurrentUserName(ctx *gin.Context) string {
	return ctx.GetString(ContextUserNameKey)
}
