package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logrus "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"uni_fleet/internal/cache"
	"uni_fleet/internal/config"
	"uni_fleet/internal/models"
	"uni_fleet/internal/timeutil"
)

const tripsCachePrefix = "trips:"

// entityRef is the shallow {id, name} shape used inside unified trips.
type entityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type driverRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone,omitempty"`
}

type busRef struct {
	ID        string `json:"id"`
	BusNumber string `json:"busNumber"`
}

// unifiedRoute carries the joined context of a daily trip.
type unifiedRoute struct {
	ID         string      `json:"id,omitempty"`
	Bus        *busRef     `json:"bus"`
	Driver     *driverRef  `json:"driver"`
	University *entityRef  `json:"university"`
	District   *entityRef  `json:"district"`
	Districts  []entityRef `json:"districts"`
}

// UnifiedTrip is the common row shape the /trips endpoint serves for both
// underlying tables.
type UnifiedTrip struct {
	ID            string               `json:"id"`
	Source        string               `json:"source"`
	TripDate      time.Time            `json:"tripDate"`
	Direction     models.TripDirection `json:"direction"`
	TripTime      string               `json:"tripTime"`
	StudentsCount int                  `json:"studentsCount"`
	Status        models.TripStatus    `json:"status"`
	Notes         *string              `json:"notes"`
	Route         unifiedRoute         `json:"route"`
}

// resolveDistricts applies the district policy: the route-level district
// wins, otherwise every district associated with the bus.
func resolveDistricts(routeDistrict *models.District, busLinks []models.BusDistrict) (first *entityRef, all []entityRef) {
	if routeDistrict != nil {
		all = []entityRef{{ID: routeDistrict.ID, Name: routeDistrict.Name}}
	} else {
		for _, link := range busLinks {
			if link.District != nil {
				all = append(all, entityRef{ID: link.District.ID, Name: link.District.Name})
			}
		}
	}
	if len(all) > 0 {
		first = &all[0]
	}
	return first, all
}

// normalizeTrip maps a Trip row into the unified shape; the scheduled
// timestamp becomes a 24-hour "HH:mm" label.
func normalizeTrip(t models.Trip) UnifiedTrip {
	var routeDistrict *models.District
	var driver *driverRef
	var university *entityRef
	if t.Route != nil {
		routeDistrict = t.Route.District
		if t.Route.Driver != nil {
			driver = &driverRef{ID: t.Route.Driver.ID, Name: t.Route.Driver.Name, Phone: t.Route.Driver.Phone}
		}
		if t.Route.University != nil {
			university = &entityRef{ID: t.Route.University.ID, Name: t.Route.University.Name}
		}
	}

	var busLinks []models.BusDistrict
	bus := &busRef{ID: t.BusID}
	if t.Bus != nil {
		bus.BusNumber = t.Bus.BusNumber
		busLinks = t.Bus.Districts
	}
	district, districts := resolveDistricts(routeDistrict, busLinks)

	return UnifiedTrip{
		ID:            t.ID,
		Source:        "trips",
		TripDate:      t.TripDate,
		Direction:     t.Direction,
		TripTime:      t.ScheduledTime.Format("15:04"),
		StudentsCount: t.PassengersCount,
		Status:        t.Status,
		Notes:         t.Notes,
		Route: unifiedRoute{
			Bus:        bus,
			Driver:     driver,
			University: university,
			District:   district,
			Districts:  districts,
		},
	}
}

// normalizeRouteTrip maps a legacy RouteTrip row into the unified shape;
// the stored 12-hour label is kept as-is.
func normalizeRouteTrip(rt models.RouteTrip) UnifiedTrip {
	var bus *busRef
	var driver *driverRef
	var university *entityRef
	var routeDistrict *models.District
	var busLinks []models.BusDistrict
	if rt.Route != nil {
		routeDistrict = rt.Route.District
		if rt.Route.Bus != nil {
			bus = &busRef{ID: rt.Route.Bus.ID, BusNumber: rt.Route.Bus.BusNumber}
			busLinks = rt.Route.Bus.Districts
		}
		if rt.Route.Driver != nil {
			driver = &driverRef{ID: rt.Route.Driver.ID, Name: rt.Route.Driver.Name, Phone: rt.Route.Driver.Phone}
		}
		if rt.Route.University != nil {
			university = &entityRef{ID: rt.Route.University.ID, Name: rt.Route.University.Name}
		}
	}
	district, districts := resolveDistricts(routeDistrict, busLinks)

	return UnifiedTrip{
		ID:            rt.ID,
		Source:        "route_trips",
		TripDate:      rt.TripDate,
		Direction:     rt.Direction,
		TripTime:      rt.TripTime,
		StudentsCount: rt.StudentsCount,
		Status:        rt.Status,
		Notes:         nil,
		Route: unifiedRoute{
			ID:         rt.RouteID,
			Bus:        bus,
			Driver:     driver,
			University: university,
			District:   district,
			Districts:  districts,
		},
	}
}

// sortUnifiedTrips orders by trip date descending, then by the time label
// ascending. The label comparison is plain string order even though the
// two sources format times differently ("08:00" vs "8:30 AM"); changing
// it to a numeric comparison would reorder existing consumers' views.
func sortUnifiedTrips(trips []UnifiedTrip) {
	sort.SliceStable(trips, func(i, j int) bool {
		di, dj := trips[i].TripDate, trips[j].TripDate
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return trips[i].TripTime < trips[j].TripTime
	})
}

// parseClock reads a wall-clock label as hour and minute. Both the
// 24-hour "HH:mm" form and 12-hour labels like "2:30 PM" are accepted.
func parseClock(label string) (int, int, error) {
	parts := strings.SplitN(timeutil.To24Hour(label), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed clock label %q", label)
	}
	hour, herr := strconv.Atoi(strings.TrimSpace(parts[0]))
	minute, merr := strconv.Atoi(strings.TrimSpace(parts[1]))
	if herr != nil || merr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("malformed clock label %q", label)
	}
	return hour, minute, nil
}

// dayWindow expands a YYYY-MM-DD string to its [00:00, 23:59:59.999999999]
// bounds.
func dayWindow(date string) (time.Time, time.Time, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := day
	end := day.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}

// ListTrips serves the merged, filterable view over both trip tables.
func ListTrips(c *gin.Context) {
	date := c.Query("date")
	startDateParam := c.Query("startDate")
	endDateParam := c.Query("endDate")
	busID := c.Query("busId")
	status := c.Query("status")
	direction := c.Query("direction")
	source := c.Query("source")

	cacheKey := fmt.Sprintf("%s%s:%s:%s:%s:%s:%s:%s",
		tripsCachePrefix, date, startDateParam, endDateParam, busID, status, direction, source)
	if cached, ok := cache.API.Get(cacheKey); ok {
		c.Header("X-Cache", "HIT")
		c.JSON(http.StatusOK, cached)
		return
	}

	var startDate, endDate time.Time
	haveWindow := false
	if date != "" {
		var err error
		startDate, endDate, err = dayWindow(date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة التاريخ غير صالحة"})
			return
		}
		haveWindow = true
	} else if startDateParam != "" && endDateParam != "" {
		start, err := time.Parse("2006-01-02", startDateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة التاريخ غير صالحة"})
			return
		}
		end, err := time.Parse("2006-01-02", endDateParam)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة التاريخ غير صالحة"})
			return
		}
		startDate, endDate = start, end
		haveWindow = true
	}

	allTrips := make([]UnifiedTrip, 0)

	if source != "route_trips" {
		q := config.DB.
			Preload("Bus.Districts.District").
			Preload("Route.University").
			Preload("Route.Driver").
			Preload("Route.District")
		if haveWindow {
			q = q.Where("trip_date BETWEEN ? AND ?", startDate, endDate)
		}
		if busID != "" {
			q = q.Where("bus_id = ?", busID)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if direction != "" {
			q = q.Where("direction = ?", direction)
		}

		var trips []models.Trip
		if err := q.Order("trip_date desc, scheduled_time asc").Find(&trips).Error; err != nil {
			logrus.WithError(err).Error("failed to query trips table")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
			return
		}
		for _, t := range trips {
			allTrips = append(allTrips, normalizeTrip(t))
		}
	}

	if source != "trips" {
		q := config.DB.
			Preload("Route.University").
			Preload("Route.Driver").
			Preload("Route.Bus.Districts.District").
			Preload("Route.District")
		if haveWindow {
			q = q.Where("trip_date BETWEEN ? AND ?", startDate, endDate)
		}
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if direction != "" {
			q = q.Where("direction = ?", direction)
		}

		var routeTrips []models.RouteTrip
		if err := q.Order("trip_date desc, trip_time asc").Find(&routeTrips).Error; err != nil {
			logrus.WithError(err).Error("failed to query route_trips table")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
			return
		}
		for _, rt := range routeTrips {
			// the legacy table has no bus column of its own
			if busID != "" && (rt.Route == nil || rt.Route.BusID != busID) {
				continue
			}
			allTrips = append(allTrips, normalizeRouteTrip(rt))
		}
	}

	sortUnifiedTrips(allTrips)

	cache.API.Set(cacheKey, allTrips, cache.TripTTL)
	c.Header("X-Cache", "MISS")
	c.JSON(http.StatusOK, allTrips)
}

// CreateTrip adds a row to the current trips table. When routeId is given
// the bus is resolved from the route.
func CreateTrip(c *gin.Context) {
	var input struct {
		BusID           string  `json:"busId"`
		RouteID         *string `json:"routeId"`
		TripDate        string  `json:"tripDate"`
		Direction       string  `json:"direction"`
		ScheduledTime   string  `json:"scheduledTime"`
		PassengersCount int     `json:"passengersCount"`
		Status          string  `json:"status"`
		Notes           *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}

	busID := input.BusID
	if input.RouteID != nil && *input.RouteID != "" {
		if err := uuid.Validate(*input.RouteID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "معرف المسار غير صالح"})
			return
		}
		var route models.Route
		if err := config.DB.Select("bus_id").First(&route, "id = ?", *input.RouteID).Error; err == nil {
			busID = route.BusID
		}
	}

	if busID == "" || input.TripDate == "" || input.Direction == "" || input.ScheduledTime == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "الحقول المطلوبة: routeId (أو busId), tripDate, direction, scheduledTime",
		})
		return
	}
	if err := uuid.Validate(busID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "معرف الباص غير صالح"})
		return
	}

	tripDate, err := time.Parse("2006-01-02", input.TripDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة التاريخ غير صالحة"})
		return
	}

	// scheduledTime is anchored to the trip date; 12-hour labels are
	// normalized before parsing
	hour, minute, err := parseClock(input.ScheduledTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة الوقت غير صالحة"})
		return
	}
	scheduled := time.Date(tripDate.Year(), tripDate.Month(), tripDate.Day(), hour, minute, 0, 0, tripDate.Location())

	status := models.StatusPending
	if input.Status != "" {
		status = models.TripStatus(input.Status)
	}

	trip := models.Trip{
		BusID:           busID,
		RouteID:         input.RouteID,
		TripDate:        tripDate,
		Direction:       models.TripDirection(input.Direction),
		ScheduledTime:   scheduled,
		PassengersCount: input.PassengersCount,
		Status:          status,
		Notes:           input.Notes,
	}
	if err := config.DB.Create(&trip).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "أحد المعرفات المرتبطة غير موجود"})
			return
		}
		logrus.WithError(err).Error("failed to create trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في إضافة الرحلة", "details": err.Error()})
		return
	}

	config.DB.Preload("Bus").Preload("Route").First(&trip, "id = ?", trip.ID)

	cache.API.InvalidatePrefix(tripsCachePrefix)
	c.JSON(http.StatusCreated, trip)
}

// GetTrip fetches a daily trip with its bus and the bus's districts.
func GetTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.
		Preload("Bus.Districts.District").
		First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الرحلة غير موجودة"})
			return
		}
		logrus.WithError(err).Error("failed to fetch trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trip)
}

// UpdateTrip partially updates the delegate-editable fields.
func UpdateTrip(c *gin.Context) {
	var trip models.Trip
	if err := config.DB.First(&trip, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الرحلة غير موجودة"})
			return
		}
		logrus.WithError(err).Error("failed to fetch trip for update")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في جلب البيانات", "details": err.Error()})
		return
	}

	var input struct {
		PassengersCount     *int    `json:"passengersCount"`
		Status              *string `json:"status"`
		ScheduledTime       *string `json:"scheduledTime"`
		ActualDepartureTime *string `json:"actualDepartureTime"`
		ActualArrivalTime   *string `json:"actualArrivalTime"`
		Notes               *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات JSON غير صالحة"})
		return
	}

	if input.PassengersCount != nil {
		trip.PassengersCount = *input.PassengersCount
	}
	if input.Status != nil {
		trip.Status = models.TripStatus(*input.Status)
	}
	if input.ScheduledTime != nil {
		t, err := time.Parse(time.RFC3339, *input.ScheduledTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة الوقت غير صالحة"})
			return
		}
		trip.ScheduledTime = t
	}
	if input.ActualDepartureTime != nil {
		if *input.ActualDepartureTime == "" {
			trip.ActualDepartureTime = nil
		} else {
			t, err := time.Parse(time.RFC3339, *input.ActualDepartureTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة الوقت غير صالحة"})
				return
			}
			trip.ActualDepartureTime = &t
		}
	}
	if input.ActualArrivalTime != nil {
		if *input.ActualArrivalTime == "" {
			trip.ActualArrivalTime = nil
		} else {
			t, err := time.Parse(time.RFC3339, *input.ActualArrivalTime)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة الوقت غير صالحة"})
				return
			}
			trip.ActualArrivalTime = &t
		}
	}
	if input.Notes != nil {
		trip.Notes = input.Notes
	}

	if err := config.DB.Save(&trip).Error; err != nil {
		logrus.WithError(err).Error("failed to update trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في تحديث الرحلة", "details": err.Error()})
		return
	}

	config.DB.Preload("Bus").First(&trip, "id = ?", trip.ID)

	cache.API.InvalidatePrefix(tripsCachePrefix)
	c.JSON(http.StatusOK, trip)
}

// DeleteTrip removes a daily trip.
func DeleteTrip(c *gin.Context) {
	res := config.DB.Delete(&models.Trip{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		logrus.WithError(res.Error).Error("failed to delete trip")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في حذف الرحلة", "details": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الرحلة غير موجودة"})
		return
	}

	cache.API.InvalidatePrefix(tripsCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الرحلة بنجاح"})
}
