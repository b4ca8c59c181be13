package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func UniversityRoutes(r *gin.Engine) {
	universities := r.Group("/universities")
	{
		universities.GET("/", controllers.ListUniversities)
		universities.POST("/", controllers.CreateUniversity)
		universities.GET("/:id", controllers.GetUniversity)
		universities.PUT("/:id", controllers.UpdateUniversity)
		universities.DELETE("/:id", controllers.DeleteUniversity)
	}
}
