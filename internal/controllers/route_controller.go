package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"uni_fleet/internal/cache"
	"uni_fleet/internal/config"
	"uni_fleet/internal/models"
)

const routesCacheKey = "routes:all"

// createRouteInput is validated before the ORM is touched; university is
// required and the referenced ids must be well-formed UUIDs.
type createRouteInput struct {
	UniversityID     string  `json:"universityId" binding:"required"`
	DriverID         string  `json:"driverId" binding:"required,uuid4"`
	BusID            string  `json:"busId" binding:"required,uuid4"`
	DistrictID       *string `json:"districtId" binding:"omitempty,uuid4"`
	RepresentativeID *string `json:"representativeId" binding:"omitempty,uuid4"`
	TotalGoTrips     int     `json:"totalGoTrips"`
	TotalReturnTrips int     `json:"totalReturnTrips"`
}

// fieldErrors turns validator failures into a field→message map for the
// 400 body.
func fieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			details[fe.Field()] = "الحقل مطلوب"
		case "uuid4":
			details[fe.Field()] = "المعرف غير صالح"
		default:
			details[fe.Field()] = fe.Tag()
		}
	}
	return details
}

// ListRoutes returns all routes newest first, with the linked entities
// resolved.
func ListRoutes(c *gin.Context) {
	if cached, ok := cache.API.Get(routesCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var routes []models.Route
	if err := config.DB.
		Preload("University").
		Preload("Driver").
		Preload("Bus.Districts.District").
		Preload("District").
		Preload("Representative").
		Order("created_at desc").
		Find(&routes).Error; err != nil {
		logrus.WithError(err).Error("failed to list routes")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	cache.API.Set(routesCacheKey, routes, cache.ListTTL)
	c.JSON(http.StatusOK, routes)
}

// CreateRoute links a university, driver and bus into a recurring
// assignment.
func CreateRoute(c *gin.Context) {
	var input createRouteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		if details := fieldErrors(err); details != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات غير صالحة", "details": details})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}

	route := models.Route{
		UniversityID:     input.UniversityID,
		DriverID:         input.DriverID,
		BusID:            input.BusID,
		DistrictID:       input.DistrictID,
		RepresentativeID: input.RepresentativeID,
		TotalGoTrips:     input.TotalGoTrips,
		TotalReturnTrips: input.TotalReturnTrips,
		IsActive:         true,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "أحد المعرفات المرتبطة غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to create route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة المسار", "details": err.Error()})
		return
	}

	config.DB.
		Preload("University").
		Preload("Driver").
		Preload("Bus.Districts.District").
		Preload("District").
		Preload("Representative").
		First(&route, "id = ?", route.ID)

	cache.API.Delete(routesCacheKey)
	c.JSON(http.StatusCreated, route)
}

// GetRoute fetches a single route with its linked entities.
func GetRoute(c *gin.Context) {
	var route models.Route
	if err := config.DB.
		Preload("University").
		Preload("Driver").
		Preload("Bus").
		Preload("District").
		Preload("Representative").
		First(&route, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "المسار غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, route)
}

// UpdateRoute modifies assignments, trip counters and the active flag.
func UpdateRoute(c *gin.Context) {
	var route models.Route
	if err := config.DB.First(&route, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "المسار غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch route for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		UniversityID     *string `json:"universityId" binding:"omitempty,uuid4"`
		DriverID         *string `json:"driverId" binding:"omitempty,uuid4"`
		BusID            *string `json:"busId" binding:"omitempty,uuid4"`
		DistrictID       *string `json:"districtId" binding:"omitempty,uuid4"`
		RepresentativeID *string `json:"representativeId" binding:"omitempty,uuid4"`
		TotalGoTrips     *int    `json:"totalGoTrips"`
		TotalReturnTrips *int    `json:"totalReturnTrips"`
		IsActive         *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		if details := fieldErrors(err); details != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات غير صالحة", "details": details})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}

	if input.UniversityID != nil {
		route.UniversityID = *input.UniversityID
	}
	if input.DriverID != nil {
		route.DriverID = *input.DriverID
	}
	if input.BusID != nil {
		route.BusID = *input.BusID
	}
	if input.DistrictID != nil {
		route.DistrictID = input.DistrictID
	}
	if input.RepresentativeID != nil {
		route.RepresentativeID = input.RepresentativeID
	}
	if input.TotalGoTrips != nil {
		route.TotalGoTrips = *input.TotalGoTrips
	}
	if input.TotalReturnTrips != nil {
		route.TotalReturnTrips = *input.TotalReturnTrips
	}
	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&route).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "أحد المعرفات المرتبطة غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to update route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث المسار", "details": err.Error()})
		return
	}

	config.DB.
		Preload("University").
		Preload("Driver").
		Preload("Bus").
		Preload("District").
		Preload("Representative").
		First(&route, "id = ?", route.ID)

	cache.API.Delete(routesCacheKey)
	c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route; its daily trips cascade.
func DeleteRoute(c *gin.Context) {
	res := config.DB.Delete(&models.Route{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete route")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف المسار", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "المسار غير موجود"})
		return
	}

	cache.API.Delete(routesCacheKey)
	cache.API.InvalidatePrefix(tripsCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المسار بنجاح"})
}
