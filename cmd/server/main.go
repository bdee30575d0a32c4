package main

import (
	"project-board-api/internal/auth"
	"project-board-api/internal/config"
	"project-board-api/internal/database"
	"project-board-api/internal/logutils"
	"project-board-api/internal/routes"
)

func main() {
	// Load config and init database
	cfg := config.Load()
	auth.Configure(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	database.InitDB(cfg)

	// Setup the routes (public, protected and manager-only routes)
	ginRoutes := routes.SetupRoutes(cfg)

	port := ":" + cfg.ServerPort
	logutils.Log.Infof("Server starting on port %s", port)

	if err := ginRoutes.Run(port); err != nil {
		logutils.Log.Fatal("Failed to start server: ", err)
	}
}
