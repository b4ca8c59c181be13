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

const busesCacheKey = "buses:all"

// ListBuses returns all buses ordered by bus number, with their district
// associations preloaded.
func ListBuses(c *gin.Context) {
	if cached, ok := cache.API.Get(busesCacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var buses []models.Bus
	if err := config.DB.
		Preload("Districts.District").
		Order("bus_number asc").
		Find(&buses).Error; err != nil {
		logrus.WithError(err).Error("failed to list buses")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	cache.API.Set(busesCacheKey, buses, cache.ListTTL)
	c.JSON(http.StatusOK, buses)
}

// CreateBus adds a bus, optionally linking it to districts.
func CreateBus(c *gin.Context) {
	var input struct {
		BusNumber   string   `json:"busNumber"`
		Capacity    *int     `json:"capacity"`
		DistrictIDs []string `json:"districtIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}
	if input.BusNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "رقم الباص مطلوب"})
		return
	}

	bus := models.Bus{BusNumber: input.BusNumber, Capacity: 50}
	if input.Capacity != nil {
		bus.Capacity = *input.Capacity
	}
	for _, districtID := range input.DistrictIDs {
		bus.Districts = append(bus.Districts, models.BusDistrict{DistrictID: districtID})
	}

	if err := config.DB.Create(&bus).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "رقم الباص موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to create bus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة الباص", "details": err.Error()})
		return
	}

	// Return the bus with districts resolved.
	config.DB.Preload("Districts.District").First(&bus, "id = ?", bus.ID)

	cache.API.Delete(busesCacheKey)
	c.JSON(http.StatusCreated, bus)
}

// GetBus fetches a single bus with its districts.
func GetBus(c *gin.Context) {
	var bus models.Bus
	if err := config.DB.
		Preload("Districts.District").
		First(&bus, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الباص غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to fetch bus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bus)
}

// UpdateBus modifies scalar fields and, when districtIds is present,
// replaces the whole association set inside one transaction. An empty list
// is a real replacement that leaves no associations behind.
func UpdateBus(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		BusNumber   *string   `json:"busNumber"`
		Capacity    *int      `json:"capacity"`
		DistrictIDs *[]string `json:"districtIds"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}

	var bus models.Bus
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&bus, "id = ?", id).Error; err != nil {
			return err
		}

		if input.BusNumber != nil {
			bus.BusNumber = *input.BusNumber
		}
		if input.Capacity != nil {
			bus.Capacity = *input.Capacity
		}
		if err := tx.Save(&bus).Error; err != nil {
			return err
		}

		if input.DistrictIDs != nil {
			if err := tx.Where("bus_id = ?", id).Delete(&models.BusDistrict{}).Error; err != nil {
				return err
			}
			for _, districtID := range *input.DistrictIDs {
				link := models.BusDistrict{BusID: id, DistrictID: districtID}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الباص غير موجود"})
			return
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "رقم الباص موجود مسبقاً"})
			return
		}
		logrus.WithError(err).Error("failed to update bus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث الباص", "details": err.Error()})
		return
	}

	config.DB.Preload("Districts.District").First(&bus, "id = ?", id)

	cache.API.Delete(busesCacheKey)
	c.JSON(http.StatusOK, bus)
}

// DeleteBus removes a bus; routes, trips and district links cascade.
func DeleteBus(c *gin.Context) {
	res := config.DB.Delete(&models.Bus{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete bus")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف الباص", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الباص غير موجود"})
		return
	}

	cache.API.Delete(busesCacheKey)
	cache.API.Delete(routesCacheKey)
	cache.API.InvalidatePrefix(tripsCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الباص بنجاح"})
}
