package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"uni_fleet/internal/importer"
	"uni_fleet/internal/timeutil"
)

// GetTimeSlots serves the half-hour scheduling grid that entry forms
// build their dropdowns from, plus the slot columns the import pipeline
// recognizes.
func GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"slots":       timeutil.GenerateTimeSlots(),
		"goTimes":     importer.GoTimes,
		"returnTimes": importer.ReturnTimes,
	})
}
