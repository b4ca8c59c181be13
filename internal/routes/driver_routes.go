package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func DriverRoutes(r *gin.Engine) {
	drivers := r.Group("/drivers")
	{
		drivers.GET("/", controllers.ListDrivers)
		drivers.POST("/", controllers.CreateDriver)
		drivers.GET("/:id", controllers.GetDriver)
		drivers.PUT("/:id", controllers.UpdateDriver)
		drivers.DELETE("/:id", controllers.DeleteDriver)
	}
}
