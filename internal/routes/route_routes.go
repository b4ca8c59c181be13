package routes

import (
	"github.com/gin-gonic/gin"

	"uni_fleet/internal/controllers"
)

func RouteRoutes(r *gin.Engine) {
	rts := r.Group("/routes")
	{
		rts.GET("/", controllers.ListRoutes)
		rts.POST("/", controllers.CreateRoute)
		rts.GET("/:id", controllers.GetRoute)
		rts.PUT("/:id", controllers.UpdateRoute)
		rts.DELETE("/:id", controllers.DeleteRoute)
	}
}
