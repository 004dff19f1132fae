package routes

import (
	"html/template"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mealpress/mealpress/config"
	"github.com/mealpress/mealpress/controllers"
	"github.com/mealpress/mealpress/middleware"
	"github.com/mealpress/mealpress/services"
	"github.com/mealpress/mealpress/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(utils.Ginzap(utils.Logger))
	r.Use(utils.RecoveryWithZap(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Every page resolves the session cookie, pages render differently
	// for logged-in users.
	r.Use(middleware.SessionLoader())

	// Post bodies and comments are stored sanitized (bluemonday), so the
	// templates may render them unescaped.
	r.SetFuncMap(template.FuncMap{
		"raw": func(s string) template.HTML { return template.HTML(s) },
	})
	r.LoadHTMLGlob("templates/*.html")
	r.Static("/static", "./static")

	mealClient := services.NewMealClient(cfg.MealAPIBaseURL, time.Duration(cfg.MealAPITimeoutSec)*time.Second)

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	pageController := controllers.NewPageController(mealClient)

	r.GET("/", pageController.Home)
	r.GET("/about-me", pageController.About)
	r.GET("/contact", pageController.Contact)
	r.POST("/contact", pageController.ContactSubmit)
	r.GET("/search", pageController.Search)
	r.POST("/search", pageController.SearchSubmit)
	r.GET("/health", pageController.Health)

	authGroup := r.Group("")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.GET("/register", authController.ShowRegister)
	authGroup.POST("/register", authController.Register)
	authGroup.GET("/login", authController.ShowLogin)
	authGroup.POST("/login", authController.Login)
	r.GET("/logout", authController.Logout)

	r.GET("/posts", postController.ListPosts)
	r.GET("/post/:id", postController.ShowPost)
	r.POST("/post/:id", middleware.LoginRequired(), postController.AddComment)

	admin := r.Group("")
	admin.Use(middleware.AdminOnly())
	admin.GET("/new-post", postController.ShowNewPost)
	admin.POST("/new-post", postController.CreatePost)
	admin.GET("/edit-post/:id", postController.ShowEditPost)
	admin.POST("/edit-post/:id", postController.UpdatePost)
	admin.GET("/delete/:id", postController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(404, "404.html", gin.H{})
	})

	return r
}
