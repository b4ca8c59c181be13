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

const districtsCacheKey = "districts:all"

// ListDistricts returns all districts ordered by name.
func ListDistricts(c *gin.Context) {
	if cached, ok := cache.API.Get(districtsCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var districts []models.District
	if err := config.DB.Order("name asc").Find(&districts).Error; err != nil {
		logrus.WithError(err).Error("failed to list districts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	cache.API.Set(districtsCacheKey, districts, cache.ListTTL)
	c.JSON(http.StatusOK, districts)
}

// CreateDistrict adds a district; names are unique.
func CreateDistrict(c *gin.Context) {
	var input struct {
		Name        string  `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الحي مطلوب"})
		return
	}

	district := models.District{Name: input.Name, Description: input.Description}
	if err := config.DB.Create(&district).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الحي موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to create district")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة الحي", "details": err.Error()})
		return
	}

	cache.API.Delete(districtsCacheKey)
	c.JSON(http.StatusCreated, district)
}

// GetDistrict fetches a single district by id.
func GetDistrict(c *gin.Context) {
	var district models.District
	if err := config.DB.First(&district, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الحي غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch district")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, district)
}

// UpdateDistrict modifies name/description.
func UpdateDistrict(c *gin.Context) {
	var district models.District
	if err := config.DB.First(&district, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الحي غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch district for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name != nil {
		district.Name = *input.Name
	}
	if input.Description != nil {
		district.Description = input.Description
	}

	if err := config.DB.Save(&district).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الحي موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to update district")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث الحي", "details": err.Error()})
		return
	}

	cache.API.Delete(districtsCacheKey)
	cache.API.Delete(busesCacheKey)
	c.JSON(http.StatusOK, district)
}

// DeleteDistrict removes a district; bus links cascade, routes keep a null
// district.
func DeleteDistrict(c *gin.Context) {
	res := config.DB.Delete(&models.District{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete district")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف الحي", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الحي غير موجود"})
		return
	}

	cache.API.Delete(districtsCacheKey)
	cache.API.Delete(busesCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الحي بنجاح"})
}
