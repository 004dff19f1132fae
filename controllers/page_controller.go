package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mealpress/mealpress/config"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

// PageController serves the static pages and the recipe search proxy.
type PageController struct {
	meals *services.MealClient
}

// NewPageController creates a PageController.
func NewPageController(meals *services.MealClient) *PageController {
	return &PageController{meals: meals}
}

// Home renders the landing page.
func (pc *PageController) Home(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", pageData(ctx, nil))
}

// About renders the about-me page.
func (pc *PageController) About(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "about.html", pageData(ctx, nil))
}

// Contact renders the contact page.
func (pc *PageController) Contact(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "contact.html", pageData(ctx, gin.H{"Sent": false}))
}

// ContactSubmit forwards the message by mail when SMTP is configured.
// Delivery failure is logged, not shown; the visitor still gets a page.
func (pc *PageController) ContactSubmit(ctx *gin.Context) {
	name := ctx.PostForm("name")
	email := ctx.PostForm("email")
	message := ctx.PostForm("message")

	cfg := config.Get()
	to := cfg.ContactTo
	if to == "" {
		to = cfg.SMTPFrom
	}
	if to != "" && message != "" {
		body := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)
		if err := utils.SendMail(to, "New contact form message", body); err != nil {
			utils.Sugar.Warnf("contact mail not delivered: %v", err)
		}
	}
	ctx.HTML(http.StatusOK, "contact.html", pageData(ctx, gin.H{"Sent": true}))
}

// Search renders the empty search page.
func (pc *PageController) Search(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "search.html", pageData(ctx, gin.H{"Found": false, "Query": ""}))
}

// SearchSubmit proxies the query to the recipe API. An empty upstream
// result renders the not-found state; a transport failure renders a
// generic error instead of being swallowed.
func (pc *PageController) SearchSubmit(ctx *gin.Context) {
	name := ctx.PostForm("mealName")
	if name == "" {
		ctx.HTML(http.StatusOK, "search.html", pageData(ctx, gin.H{"Found": false, "Query": ""}))
		return
	}

	meal, found, err := pc.meals.Search(ctx.Request.Context(), name)
	if err != nil {
		utils.Sugar.Errorf("meal search %q failed: %v", name, err)
		ctx.HTML(http.StatusBadGateway, "search.html", pageData(ctx, gin.H{
			"Found":  false,
			"Query":  name,
			"Errors": []string{"the recipe service is unavailable, please try again later"},
		}))
		return
	}
	if !found {
		ctx.HTML(http.StatusOK, "search.html", pageData(ctx, gin.H{"Found": false, "Query": name}))
		return
	}
	ctx.HTML(http.StatusOK, "search.html", pageData(ctx, gin.H{"Found": true, "Query": name, "Meal": meal}))
}

// Health is a liveness probe.
func (pc *PageController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}
