package controllers

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"uni_fleet/internal/config"
	"uni_fleet/internal/models"
)

// statRow is the minimal projection of a daily trip needed for the
// aggregation, common to both tables.
type statRow struct {
	RouteID  string
	Status   models.TripStatus
	Students int
}

// routeAttribution maps a route to its driver and university.
type routeAttribution struct {
	Driver     *driverRef
	University *entityRef
}

// DriverPerformance is the per-driver block of the statistics response.
type DriverPerformance struct {
	DriverID              string  `json:"driverId"`
	Name                  string  `json:"name"`
	Trips                 int     `json:"trips"`
	Arrived               int     `json:"arrived"`
	PerformancePercentage float64 `json:"performancePercentage"`
}

// UniversityActivity is the per-university block of the statistics
// response.
type UniversityActivity struct {
	UniversityID string `json:"universityId"`
	Name         string `json:"name"`
	Trips        int    `json:"trips"`
	Students     int    `json:"students"`
}

// buildStatusCounts folds both tables' rows into a zero-filled status map.
func buildStatusCounts(rows []statRow) map[models.TripStatus]int {
	counts := make(map[models.TripStatus]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}
	for _, r := range rows {
		if _, ok := counts[r.Status]; ok {
			counts[r.Status]++
		}
	}
	return counts
}

// buildDriverPerformance attributes rows to drivers through their route
// and computes the arrived/total percentage to one decimal. A driver with
// zero trips cannot occur here, but the guard keeps the division safe.
func buildDriverPerformance(rows []statRow, routes map[string]routeAttribution) []DriverPerformance {
	byDriver := make(map[string]*DriverPerformance)
	for _, r := range rows {
		route, ok := routes[r.RouteID]
		if !ok || route.Driver == nil {
			continue
		}
		d, ok := byDriver[route.Driver.ID]
		if !ok {
			d = &DriverPerformance{DriverID: route.Driver.ID, Name: route.Driver.Name}
			byDriver[route.Driver.ID] = d
		}
		d.Trips++
		if r.Status == models.StatusArrived {
			d.Arrived++
		}
	}

	out := make([]DriverPerformance, 0, len(byDriver))
	for _, d := range byDriver {
		if d.Trips > 0 {
			d.PerformancePercentage = math.Round(float64(d.Arrived)/float64(d.Trips)*1000) / 10
		}
		out = append(out, *d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PerformancePercentage > out[j].PerformancePercentage
	})
	return out
}

// buildUniversityActivity attributes rows to universities through their
// route, summing trips and students.
func buildUniversityActivity(rows []statRow, routes map[string]routeAttribution) []UniversityActivity {
	byUniversity := make(map[string]*UniversityActivity)
	for _, r := range rows {
		route, ok := routes[r.RouteID]
		if !ok || route.University == nil {
			continue
		}
		u, ok := byUniversity[route.University.ID]
		if !ok {
			u = &UniversityActivity{UniversityID: route.University.ID, Name: route.University.Name}
			byUniversity[route.University.ID] = u
		}
		u.Trips++
		u.Students += r.Students
	}

	out := make([]UniversityActivity, 0, len(byUniversity))
	for _, u := range byUniversity {
		out = append(out, *u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Trips > out[j].Trips })
	return out
}

// GetStatistics aggregates both trip tables for one day: entity totals,
// status counts, student sums, and driver/university breakdowns.
func GetStatistics(c *gin.Context) {
	targetDate := c.Query("date")
	if targetDate == "" {
		targetDate = time.Now().Format("2006-01-02")
	}
	startDate, endDate, err := dayWindow(targetDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "صيغة التاريخ غير صالحة"})
		return
	}

	var totalUniversities, totalDrivers, totalBuses, totalDistricts int64
	for _, count := range []struct {
		model interface{}
		dst   *int64
	}{
		{&models.University{}, &totalUniversities},
		{&models.Driver{}, &totalDrivers},
		{&models.Bus{}, &totalBuses},
		{&models.District{}, &totalDistricts},
	} {
		if err := config.DB.Model(count.model).Count(count.dst).Error; err != nil {
			logrus.WithError(err).Error("failed to count entities")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل جلب الإحصائيات", "details": err.Error()})
			return
		}
	}

	var trips []models.Trip
	if err := config.DB.
		Select("id", "route_id", "status", "passengers_count").
		Where("trip_date BETWEEN ? AND ?", startDate, endDate).
		Find(&trips).Error; err != nil {
		logrus.WithError(err).Error("failed to query trips for statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل جلب الإحصائيات", "details": err.Error()})
		return
	}

	var routeTrips []models.RouteTrip
	if err := config.DB.
		Select("id", "route_id", "status", "students_count").
		Where("trip_date BETWEEN ? AND ?", startDate, endDate).
		Find(&routeTrips).Error; err != nil {
		logrus.WithError(err).Error("failed to query route trips for statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل جلب الإحصائيات", "details": err.Error()})
		return
	}

	rows := make([]statRow, 0, len(trips)+len(routeTrips))
	totalStudents := 0
	routeIDs := make(map[string]struct{})
	for _, t := range trips {
		routeID := ""
		if t.RouteID != nil {
			routeID = *t.RouteID
			routeIDs[routeID] = struct{}{}
		}
		rows = append(rows, statRow{RouteID: routeID, Status: t.Status, Students: t.PassengersCount})
		totalStudents += t.PassengersCount
	}
	for _, rt := range routeTrips {
		routeIDs[rt.RouteID] = struct{}{}
		rows = append(rows, statRow{RouteID: rt.RouteID, Status: rt.Status, Students: rt.StudentsCount})
		totalStudents += rt.StudentsCount
	}

	attributions := make(map[string]routeAttribution)
	if len(routeIDs) > 0 {
		ids := make([]string, 0, len(routeIDs))
		for id := range routeIDs {
			ids = append(ids, id)
		}
		var routes []models.Route
		if err := config.DB.
			Preload("Driver").
			Preload("University").
			Where("id IN ?", ids).
			Find(&routes).Error; err != nil {
			logrus.WithError(err).Error("failed to resolve routes for statistics")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "فشل جلب الإحصائيات", "details": err.Error()})
			return
		}
		for _, route := range routes {
			attr := routeAttribution{}
			if route.Driver != nil {
				attr.Driver = &driverRef{ID: route.Driver.ID, Name: route.Driver.Name}
			}
			if route.University != nil {
				attr.University = &entityRef{ID: route.University.ID, Name: route.University.Name}
			}
			attributions[route.ID] = attr
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"date": targetDate,
		"totals": gin.H{
			"totalTrips":        len(rows),
			"totalStudents":     totalStudents,
			"totalUniversities": totalUniversities,
			"totalDrivers":      totalDrivers,
			"totalBuses":        totalBuses,
			"totalDistricts":    totalDistricts,
		},
		"statusCounts":         buildStatusCounts(rows),
		"driversPerformance":   buildDriverPerformance(rows, attributions),
		"universitiesActivity": buildUniversityActivity(rows, attributions),
	})
}
