package controllers

import (
	"testing"

	"uni_fleet/internal/models"
)

func TestBuildStatusCountsZeroFills(t *testing.T) {
	counts := buildStatusCounts(nil)
	if len(counts) != len(models.AllStatuses) {
		t.Fatalf("got %d statuses, want %d", len(counts), len(models.AllStatuses))
	}
	for _, s := range models.AllStatuses {
		if counts[s] != 0 {
			t.Errorf("%s = %d, want 0", s, counts[s])
		}
	}
}

func TestBuildStatusCountsIgnoresUnknownStatus(t *testing.T) {
	rows := []statRow{
		{Status: models.StatusArrived},
		{Status: models.StatusArrived},
		{Status: models.StatusDelayed},
		{Status: models.TripStatus("BOGUS")},
	}
	counts := buildStatusCounts(rows)
	if counts[models.StatusArrived] != 2 {
		t.Errorf("ARRIVED = %d, want 2", counts[models.StatusArrived])
	}
	if counts[models.StatusDelayed] != 1 {
		t.Errorf("DELAYED = %d, want 1", counts[models.StatusDelayed])
	}
	if _, ok := counts[models.TripStatus("BOGUS")]; ok {
		t.Error("unknown status must not create a bucket")
	}
}

func statRoutes() map[string]routeAttribution {
	return map[string]routeAttribution{
		"r1": {
			Driver:     &driverRef{ID: "dr1", Name: "أحمد"},
			University: &entityRef{ID: "u1", Name: "جامعة الملك سعود"},
		},
		"r2": {
			Driver:     &driverRef{ID: "dr2", Name: "سالم"},
			University: &entityRef{ID: "u1", Name: "جامعة الملك سعود"},
		},
		"r3": {
			Driver:     &driverRef{ID: "dr1", Name: "أحمد"},
			University: &entityRef{ID: "u2", Name: "جامعة الأميرة نورة"},
		},
	}
}

func TestBuildDriverPerformance(t *testing.T) {
	rows := []statRow{
		{RouteID: "r1", Status: models.StatusArrived},
		{RouteID: "r1", Status: models.StatusArrived},
		{RouteID: "r3", Status: models.StatusPending},
		{RouteID: "r2", Status: models.StatusCancelled},
		{RouteID: "missing", Status: models.StatusArrived},
	}

	perf := buildDriverPerformance(rows, statRoutes())
	if len(perf) != 2 {
		t.Fatalf("got %d drivers, want 2", len(perf))
	}

	// dr1: 3 trips, 2 arrived, 66.7%. dr2: 1 trip, 0 arrived, 0%.
	if perf[0].DriverID != "dr1" {
		t.Fatalf("first driver = %s, want the higher percentage first", perf[0].DriverID)
	}
	if perf[0].Trips != 3 || perf[0].Arrived != 2 {
		t.Errorf("dr1 trips/arrived = %d/%d, want 3/2", perf[0].Trips, perf[0].Arrived)
	}
	if perf[0].PerformancePercentage != 66.7 {
		t.Errorf("dr1 percentage = %v, want 66.7", perf[0].PerformancePercentage)
	}
	if perf[1].DriverID != "dr2" || perf[1].PerformancePercentage != 0 {
		t.Errorf("dr2 = %+v, want zero percentage", perf[1])
	}
}

func TestBuildDriverPerformanceEmpty(t *testing.T) {
	perf := buildDriverPerformance(nil, statRoutes())
	if perf == nil {
		t.Fatal("want an empty slice, not nil, so JSON renders []")
	}
	if len(perf) != 0 {
		t.Errorf("got %d entries", len(perf))
	}
}

func TestBuildUniversityActivity(t *testing.T) {
	rows := []statRow{
		{RouteID: "r1", Students: 30},
		{RouteID: "r2", Students: 25},
		{RouteID: "r3", Students: 40},
		{RouteID: "missing", Students: 99},
	}

	activity := buildUniversityActivity(rows, statRoutes())
	if len(activity) != 2 {
		t.Fatalf("got %d universities, want 2", len(activity))
	}

	// u1 gets r1+r2 (2 trips, 55 students), u2 gets r3 (1 trip, 40).
	if activity[0].UniversityID != "u1" {
		t.Fatalf("first = %s, want the busier university first", activity[0].UniversityID)
	}
	if activity[0].Trips != 2 || activity[0].Students != 55 {
		t.Errorf("u1 = %+v, want 2 trips and 55 students", activity[0])
	}
	if activity[1].UniversityID != "u2" || activity[1].Students != 40 {
		t.Errorf("u2 = %+v", activity[1])
	}
}
