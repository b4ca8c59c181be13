package routes

import (
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"uni_fleet/internal/controllers"
	"uni_fleet/internal/middleware"
)

// SetupRouter wires every resource group plus the platform endpoints.
// Engine-wide middleware is attached before any route is registered so
// every handler chain includes it.
func SetupRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(ginlog.SetLogger(ginlog.WithDefaultLevel(zerolog.InfoLevel)))

	limiter := middleware.NewRateLimiter(100, time.Minute, 10*time.Minute)
	r.Use(limiter.Middleware())

	UniversityRoutes(r)
	DriverRoutes(r)
	BusRoutes(r)
	DistrictRoutes(r)
	RepresentativeRoutes(r)
	RouteRoutes(r)
	TripRoutes(r)

	r.GET("/timeslots", controllers.GetTimeSlots)
	r.GET("/statistics", controllers.GetStatistics)
	r.POST("/import/excel", controllers.ImportExcel)
	r.GET("/health", controllers.HealthCheck)

	return r
}
