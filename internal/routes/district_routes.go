package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func DistrictRoutes(r *gin.Engine) {
	districts := r.Group("/districts")
	{
		districts.GET("/", controllers.ListDistricts)
		districts.POST("/", controllers.CreateDistrict)
		districts.GET("/:id", controllers.GetDistrict)
		districts.PUT("/:id", controllers.UpdateDistrict)
		districts.DELETE("/:id", controllers.DeleteDistrict)
	}
}
