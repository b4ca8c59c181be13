package main

import (
	"log"
	"net/http"

	"uni_fleet/internal/cache"
	"uni_fleet/internal/config"
	"uni_fleet/internal/logger"
	"uni_fleet/internal/middleware"
	"uni_fleet/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Shared API cache; trip queries override with their shorter TTL
	cache.Init(cache.ListTTL)

	// Router with recovery, request logging and rate limiting attached
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := "0.0.0.0:" + config.GetEnv("PORT", "8080")
	log.Println("🚀 Server running at :" + config.GetEnv("PORT", "8080"))
	log.Fatal(http.ListenAndServe(addr, handler))
}
