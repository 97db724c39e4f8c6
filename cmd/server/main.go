package main

import (
	"github.com/joho/godotenv"

	"taskhub/internal/app"
)

// @title           TaskHub API
// @version         1.0
// @description     Personal task management service.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	// .env is optional; real deployments inject env directly
	_ = godotenv.Load()

	app.Run()
}
