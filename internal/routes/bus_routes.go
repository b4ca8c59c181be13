package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func BusRoutes(r *gin.Engine) {
	buses := r.Group("/buses")
	{
		buses.GET("/", controllers.ListBuses)
		buses.POST("/", controllers.CreateBus)
		buses.GET("/:id", controllers.GetBus)
		buses.PUT("/:id", controllers.UpdateBus)
		buses.DELETE("/:id", controllers.DeleteBus)
	}
}
