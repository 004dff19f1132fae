package main

import (
	"github.com/mealpress/mealpress/config"
	"github.com/mealpress/mealpress/models"
	"github.com/mealpress/mealpress/routes"
	"github.com/mealpress/mealpress/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// Schema is created automatically when absent
	db := config.InitDatabase(&models.User{}, &models.BlogPost{}, &models.Comment{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
