package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/mealpress/mealpress/middleware"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

// pageData assembles the fields every template expects (flash message
// and session state) and merges the page-specific extras over them.
func pageData(ctx *gin.Context, extra gin.H) gin.H {
	userID, loggedIn := middleware.CurrentUserID(ctx)
	data := gin.H{
		"Flash":    utils.PopFlash(ctx),
		"LoggedIn": loggedIn,
		"UserName": middleware.CurrentUserName(ctx),
		"IsAdmin":  loggedIn && userID == services.AdminUserID,
		"Errors":   []string{},
	}
	for k, v := range extra {
		data[k] = v
	}
	return data
}
