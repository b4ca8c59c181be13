package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"uni_fleet/internal/cache"
	"uni_fleet/internal/config"
	"uni_fleet/internal/models"
)

const driversCacheKey = "drivers:all"

// ListDrivers returns all drivers ordered by name.
func ListDrivers(c *gin.Context) {
	if cached, ok := cache.API.Get(driversCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var drivers []models.Driver
	if err := config.DB.Order("name asc").Find(&drivers).Error; err != nil {
		logrus.WithError(err).Error("failed to list drivers")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	cache.API.Set(driversCacheKey, drivers, cache.ListTTL)
	c.JSON(http.StatusOK, drivers)
}

// CreateDriver adds a driver.
func CreateDriver(c *gin.Context) {
	var input struct {
		Name  string  `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم السائق مطلوب"})
		return
	}

	driver := models.Driver{Name: input.Name, Phone: input.Phone}
	if err := config.DB.Create(&driver).Error; err != nil {
		logrus.WithError(err).Error("failed to create driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة السائق", "details": err.Error()})
		return
	}

	cache.API.Delete(driversCacheKey)
	c.JSON(http.StatusCreated, driver)
}

// GetDriver fetches a single driver by id.
func GetDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "السائق غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, driver)
}

// UpdateDriver modifies name/phone.
func UpdateDriver(c *gin.Context) {
	var driver models.Driver
	if err := config.DB.First(&driver, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "السائق غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch driver for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.Phone != nil {
		driver.Phone = input.Phone
	}

	if err := config.DB.Save(&driver).Error; err != nil {
		logrus.WithError(err).Error("failed to update driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث السائق", "details": err.Error()})
		return
	}

	cache.API.Delete(driversCacheKey)
	c.JSON(http.StatusOK, driver)
}

// DeleteDriver removes a driver; dependent routes cascade.
func DeleteDriver(c *gin.Context) {
	res := config.DB.Delete(&models.Driver{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete driver")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف السائق", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "السائق غير موجود"})
		return
	}

	cache.API.Delete(driversCacheKey)
	cache.API.Delete(routesCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف السائق بنجاح"})
}
