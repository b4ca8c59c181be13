package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"uni_fleet/internal/config"
)

// healthRow is one row of the health probe's result set; the response
// carries the set as-is.
type healthRow struct {
	Ok int `json:"ok"`
}

// HealthCheck runs a trivial round-trip query against the database.
func HealthCheck(c *gin.Context) {
	var rows []healthRow
	if err := config.DB.Raw("SELECT 1 AS ok").Scan(&rows).Error; err != nil {
		logrus.WithError(err).Error("health check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "فشل التحقق من الاتصال بقاعدة البيانات",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "db": rows})
}
