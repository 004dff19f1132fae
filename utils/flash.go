package utils

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookieName = "mealpress_flash"

// Flash stores a one-shot status message to be shown after a redirect.
func Flash(ctx *gin.Context, message string) {
	encoded := base64.URLEncoding.EncodeToString([]byte(message))
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(flashCookieName, encoded, 300, "/", "", false, true)
}

// PopFlash returns the pending flash message, clearing it in the same
// response so it renders exactly once.
func PopFlash(ctx *gin.Context) string {
	encoded, err := ctx.Cookie(flashCookieName)
	if err != nil || encoded == "" {
		return ""
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(flashCookieName, "", -1, "/", "", false, true)
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return ""
	}
	return string(decoded)
}
