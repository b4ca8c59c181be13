package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"uni_fleet/internal/cache"
	"uni_fleet/internal/config"
	"uni_fleet/internal/importer"
	"uni_fleet/internal/models"
)

// importResults summarizes a batch run; row failures are collected, not
// fatal.
type importResults struct {
	RoutesCreated int      `json:"routesCreated"`
	TripsCreated  int      `json:"tripsCreated"`
	Errors        []string `json:"errors,omitempty"`
}

// ImportExcel ingests a spreadsheet of routes and today's trips. Each row
// resolves or creates its university, driver, bus and representative by
// name, then creates one route plus a RouteTrip per filled time-slot cell.
func ImportExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "الملف مطلوب"})
		return
	}
	if !importer.SupportedExtension(fileHeader.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة الملف غير مدعومة. الصيغ المقبولة: .xlsx, .xls, .csv"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في استيراد الملف", "details": err.Error()})
		return
	}
	defer file.Close()

	rows, err := importer.ParseFile(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrEmptyFile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "الملف فارغ"})
			return
		}
		logrus.WithError(err).Error("failed to parse uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "تعذر قراءة الملف", "details": err.Error()})
		return
	}

	today := time.Now().Truncate(24 * time.Hour)
	results := importResults{Errors: []string{}}

	for i, raw := range rows {
		row := importer.MapRow(raw)
		if err := importRow(row, today, &results); err != nil {
			results.Errors = append(results.Errors, fmt.Sprintf("خطأ في السطر %d: %s", i+2, err.Error()))
		}
	}

	cache.API.Delete(routesCacheKey)
	cache.API.Delete(universitiesCacheKey)
	cache.API.Delete(driversCacheKey)
	cache.API.Delete(busesCacheKey)
	cache.API.Delete(representativesCacheKey)
	cache.API.InvalidatePrefix(tripsCachePrefix)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "تم استيراد البيانات بنجاح",
		"details": gin.H{
			"routesCreated": results.RoutesCreated,
			"tripsCreated":  results.TripsCreated,
		},
		"errors": results.Errors,
	})
}

// importRow creates one route and its day's trips. Duplicate-trip errors
// are logged and skipped so the rest of the row still lands.
func importRow(row importer.RouteRow, tripDate time.Time, results *importResults) error {
	university, err := findOrCreateUniversity(row.University)
	if err != nil {
		return err
	}
	driver, err := findOrCreateDriver(row.Driver)
	if err != nil {
		return err
	}
	bus, err := findOrCreateBus(row.Bus)
	if err != nil {
		return err
	}
	rep, err := findOrCreateRepresentative(row.Representative)
	if err != nil {
		return err
	}

	route := models.Route{
		UniversityID:     university.ID,
		DriverID:         driver.ID,
		BusID:            bus.ID,
		RepresentativeID: &rep.ID,
		TotalGoTrips:     row.GoTrips,
		TotalReturnTrips: row.ReturnTrips,
		IsActive:         true,
	}
	if err := config.DB.Create(&route).Error; err != nil {
		return err
	}
	results.RoutesCreated++

	for _, slot := range row.Slots {
		trip := models.RouteTrip{
			RouteID:       route.ID,
			TripDate:      tripDate,
			Direction:     slot.Direction,
			TripTime:      slot.TripTime,
			StudentsCount: slot.StudentsCount,
			Status:        models.StatusPending,
		}
		if err := config.DB.Create(&trip).Error; err != nil {
			// duplicate slot for the same route/date/time/direction
			logrus.WithError(err).WithFields(logrus.Fields{
				"route":     route.ID,
				"tripTime":  slot.TripTime,
				"direction": slot.Direction,
			}).Warn("skipped trip row during import")
			continue
		}
		results.TripsCreated++
	}
	return nil
}

func findOrCreateUniversity(name string) (*models.University, error) {
	if name == "" {
		return nil, errors.New("اسم الجامعة مفقود")
	}
	var university models.University
	err := config.DB.Where("name = ?", name).First(&university).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		university = models.University{Name: name}
		err = config.DB.Create(&university).Error
	}
	if err != nil {
		return nil, err
	}
	return &university, nil
}

func findOrCreateDriver(name string) (*models.Driver, error) {
	if name == "" {
		return nil, errors.New("اسم السائق مفقود")
	}
	var driver models.Driver
	err := config.DB.Where("name = ?", name).First(&driver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		driver = models.Driver{Name: name}
		err = config.DB.Create(&driver).Error
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func findOrCreateBus(busNumber string) (*models.Bus, error) {
	if busNumber == "" {
		return nil, errors.New("رقم الباص مفقود")
	}
	var bus models.Bus
	err := config.DB.Where("bus_number = ?", busNumber).First(&bus).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		bus = models.Bus{BusNumber: busNumber, Capacity: 50}
		err = config.DB.Create(&bus).Error
	}
	if err != nil {
		return nil, err
	}
	return &bus, nil
}

func findOrCreateRepresentative(name string) (*models.Representative, error) {
	if name == "" {
		return nil, errors.New("اسم المندوب مفقود")
	}
	var rep models.Representative
	err := config.DB.Where("name = ?", name).First(&rep).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rep = models.Representative{Name: name}
		err = config.DB.Create(&rep).Error
	}
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
