package main

import (
	"culinary-hub/internal/app"
	"culinary-hub/pkg/config"
	"culinary-hub/pkg/logger"
	"culinary-hub/pkg/validation"
)

// @title           Culinary Hub API
// @version         1.0
// @description     Recipes, cooking courses, chef applications and community posts

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log := logger.New()
	defer log.Sync()

	if err := validation.Register(); err != nil {
		log.Error("Failed to register validators: %v", err)
		panic(err)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("Failed to initialize application: %v", err)
		panic(err)
	}

	application.Run()
	if err := application.Wait(); err != nil {
		log.Error("%v", err)
	}
	if err := application.Shutdown(); err != nil {
		log.Error("Shutdown finished with errors: %v", err)
	}
}
