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

const universitiesCacheKey = "universities:all"

// universityWithCount decorates the list response with the number of
// routes bound to each university.
type universityWithCount struct {
	models.University
	RoutesCount int64 `json:"routesCount"`
}

// ListUniversities returns all universities ordered by name, each with its
// route count.
func ListUniversities(c *gin.Context) {
	if cached, ok := cache.API.Get(universitiesCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var universities []models.University
	if err := config.DB.Order("name asc").Find(&universities).Error; err != nil {
		logrus.WithError(err).Error("failed to list universities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	// Count routes per university in one grouped query.
	type routeCount struct {
		UniversityID string
		Count        int64
	}
	var counts []routeCount
	if err := config.DB.Model(&models.Route{}).
		Select("university_id, count(*) as count").
		Group("university_id").
		Scan(&counts).Error; err != nil {
		logrus.WithError(err).Error("failed to count routes per university")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	countMap := make(map[string]int64, len(counts))
	for _, rc := range counts {
		countMap[rc.UniversityID] = rc.Count
	}

	enriched := make([]universityWithCount, 0, len(universities))
	for _, u := range universities {
		enriched = append(enriched, universityWithCount{University: u, RoutesCount: countMap[u.ID]})
	}

	cache.API.Set(universitiesCacheKey, enriched, cache.ListTTL)
	c.JSON(http.StatusOK, enriched)
}

// CreateUniversity adds a university; names are unique.
func CreateUniversity(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الجامعة مطلوب"})
		return
	}

	university := models.University{Name: input.Name}
	if err := config.DB.Create(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الجامعة موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to create university")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة الجامعة", "details": err.Error()})
		return
	}

	cache.API.Delete(universitiesCacheKey)
	c.JSON(http.StatusCreated, university)
}

// GetUniversity fetches a single university by id.
func GetUniversity(c *gin.Context) {
	var university models.University
	if err := config.DB.First(&university, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الجامعة غير موجودة"})
			return
		}
		logrus.WithError(err).Error("failed to fetch university")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, university)
}

// UpdateUniversity renames a university.
func UpdateUniversity(c *gin.Context) {
	var university models.University
	if err := config.DB.First(&university, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الجامعة غير موجودة"})
			return
		}
		logrus.WithError(err).Error("failed to fetch university for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		Name *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.Name != nil {
		university.Name = *input.Name
	}

	if err := config.DB.Save(&university).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "اسم الجامعة موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to update university")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث الجامعة", "details": err.Error()})
		return
	}

	cache.API.Delete(universitiesCacheKey)
	c.JSON(http.StatusOK, university)
}

// DeleteUniversity removes a university; dependent routes cascade.
func DeleteUniversity(c *gin.Context) {
	res := config.DB.Delete(&models.University{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete university")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف الجامعة", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الجامعة غير موجودة"})
		return
	}

	cache.API.Delete(universitiesCacheKey)
	cache.API.Delete(routesCacheKey)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الجامعة بنجاح"})
}
