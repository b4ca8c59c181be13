package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func RepresentativeRoutes(r *gin.Engine) {
	representatives := r.Group("/representatives")
	{
		representatives.GET("/", controllers.ListRepresentatives)
		representatives.POST("/", controllers.CreateRepresentative)
		representatives.GET("/:id", controllers.GetRepresentative)
		representatives.PUT("/:id", controllers.UpdateRepresentative)
		representatives.DELETE("/:id", controllers.DeleteRepresentative)
	}
}
