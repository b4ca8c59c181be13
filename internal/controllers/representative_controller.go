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

const representativesCacheKey = "representatives:all"

// ListRepresentatives returns all representatives ordered by name.
func ListRepresentatives(c *gin.Context) {
	if cached, ok := cache.API.Get(representativesCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var reps []models.Representative
	if err := config.DB.Order("name asc").Find(&reps).Error; err != nil {
		logrus.WithError(err).Error("failed to list representatives")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	cache.API.Set(representativesCacheKey, reps, cache.ListTTL)
	c.JSON(http.StatusOK, reps)
}

// CreateRepresentative adds a delegate.
func CreateRepresentative(c *gin.Context) {
	var input struct {
		Name  string  `json:"name"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم المندوب مطلوب"})
		return
	}

	rep := models.Representative{Name: input.Name, Phone: input.Phone, Email: input.Email}
	if err := config.DB.Create(&rep).Error; err != nil {
		logrus.WithError(err).Error("failed to create representative")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة المندوب", "details": err.Error()})
		return
	}

	cache.API.Delete(representativesCacheKey)
	c.JSON(http.StatusCreated, rep)
}

// GetRepresentative fetches a single representative by id.
func GetRepresentative(c *gin.Context) {
	var rep models.Representative
	if err := config.DB.First(&rep, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "المندوب غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch representative")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// UpdateRepresentative modifies name/phone/email.
func UpdateRepresentative(c *gin.Context) {
	var rep models.Representative
	if err := config.DB.First(&rep, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "المندوب غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch representative for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		Name  *string `json:"name"`
		Phone *string `json:"phone"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name != nil {
		rep.Name = *input.Name
	}
	if input.Phone != nil {
		rep.Phone = input.Phone
	}
	if input.Email != nil {
		rep.Email = input.Email
	}

	if err := config.DB.Save(&rep).Error; err != nil {
		logrus.WithError(err).Error("failed to update representative")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث المندوب", "details": err.Error()})
		return
	}

	cache.API.Delete(representativesCacheKey)
	c.JSON(http.StatusOK, rep)
}

// DeleteRepresentative removes a delegate; routes keep a null reference.
func DeleteRepresentative(c *gin.Context) {
	res := config.DB.Delete(&models.Representative{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete representative")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف المندوب", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "المندوب غير موجود"})
		return
	}

	cache.API.Delete(representativesCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المندوب بنجاح"})
}
