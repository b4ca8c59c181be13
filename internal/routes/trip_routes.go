package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func TripRoutes(r *gin.Engine) {
	trips := r.Group("/trips")
	{
		trips.GET("/", controllers.ListTrips)
		trips.POST("/", controllers.CreateTrip)
		trips.GET("/:id", controllers.GetTrip)
		trips.PUT("/:id", controllers.UpdateTrip)
		trips.DELETE("/:id", controllers.DeleteTrip)
	}
}
