package controllers

import (
	"testing"
	"time"

	"uni_fleet/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSortUnifiedTripsDateDescThenTimeAsc(t *testing.T) {
	trips := []UnifiedTrip{
		{ID: "a", TripDate: day("2025-03-01"), TripTime: "8:30 AM"},
		{ID: "b", TripDate: day("2025-03-02"), TripTime: "1:30 PM"},
		{ID: "c", TripDate: day("2025-03-01"), TripTime: "08:00"},
		{ID: "d", TripDate: day("2025-03-02"), TripTime: "07:30"},
	}

	sortUnifiedTrips(trips)

	want := []string{"d", "b", "c", "a"}
	for i, id := range want {
		if trips[i].ID != id {
			t.Fatalf("position %d = %s, want %s (order %v)", i, trips[i].ID, id, trips)
		}
	}
}

// The two sources format their labels differently and the tie-break is a
// plain string compare, so the 24-hour "08:00" sorts before the 12-hour
// "8:30 AM" on the same day.
func TestSortUnifiedTripsMixedLabelFormats(t *testing.T) {
	trips := []UnifiedTrip{
		{ID: "legacy", Source: "route_trips", TripDate: day("2025-03-01"), TripTime: "8:30 AM"},
		{ID: "current", Source: "trips", TripDate: day("2025-03-01"), TripTime: "08:00"},
	}

	sortUnifiedTrips(trips)

	if trips[0].ID != "current" || trips[1].ID != "legacy" {
		t.Errorf("got order [%s %s], want [current legacy]", trips[0].ID, trips[1].ID)
	}
}

func TestSortUnifiedTripsIsStable(t *testing.T) {
	trips := []UnifiedTrip{
		{ID: "first", TripDate: day("2025-03-01"), TripTime: "07:00"},
		{ID: "second", TripDate: day("2025-03-01"), TripTime: "07:00"},
	}
	sortUnifiedTrips(trips)
	if trips[0].ID != "first" {
		t.Error("equal rows must keep their insertion order")
	}
}

func TestResolveDistrictsPrefersRouteDistrict(t *testing.T) {
	routeDistrict := &models.District{ID: "d1", Name: "حي العليا"}
	busLinks := []models.BusDistrict{
		{District: &models.District{ID: "d2", Name: "حي الرياض"}},
		{District: &models.District{ID: "d3", Name: "حي السلي"}},
	}

	first, all := resolveDistricts(routeDistrict, busLinks)
	if first == nil || first.ID != "d1" {
		t.Fatalf("first = %+v, want the route district", first)
	}
	if len(all) != 1 {
		t.Errorf("route district should shadow bus districts, got %d", len(all))
	}
}

func TestResolveDistrictsFallsBackToBus(t *testing.T) {
	busLinks := []models.BusDistrict{
		{District: &models.District{ID: "d2", Name: "حي الرياض"}},
		{District: &models.District{ID: "d3", Name: "حي السلي"}},
	}

	first, all := resolveDistricts(nil, busLinks)
	if first == nil || first.ID != "d2" {
		t.Fatalf("first = %+v, want the first bus district", first)
	}
	if len(all) != 2 {
		t.Errorf("got %d districts, want all 2 bus districts", len(all))
	}
}

func TestResolveDistrictsEmpty(t *testing.T) {
	first, all := resolveDistricts(nil, nil)
	if first != nil || len(all) != 0 {
		t.Errorf("got %v / %v, want nil / empty", first, all)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		label   string
		hour    int
		minute  int
		wantErr bool
	}{
		{label: "08:00", hour: 8, minute: 0},
		{label: "14:30", hour: 14, minute: 30},
		{label: "2:30 PM", hour: 14, minute: 30},
		{label: "12:05 AM", hour: 0, minute: 5},
		{label: "المجمّع", wantErr: true},
		{label: "25:00", wantErr: true},
		{label: "08:61", wantErr: true},
		{label: "", wantErr: true},
	}
	for _, tc := range tests {
		h, m, err := parseClock(tc.label)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseClock(%q) accepted, want error", tc.label)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseClock(%q) failed: %v", tc.label, err)
			continue
		}
		if h != tc.hour || m != tc.minute {
			t.Errorf("parseClock(%q) = %d:%d, want %d:%d", tc.label, h, m, tc.hour, tc.minute)
		}
	}
}

func TestNormalizeTripFormatsScheduledTime(t *testing.T) {
	phone := "0501234567"
	trip := models.Trip{
		ID:              "t1",
		BusID:           "b1",
		TripDate:        day("2025-03-01"),
		Direction:       models.DirectionGo,
		ScheduledTime:   time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
		PassengersCount: 30,
		Status:          models.StatusPending,
		Bus:             &models.Bus{ID: "b1", BusNumber: "BUS-001"},
		Route: &models.Route{
			Driver:     &models.Driver{ID: "dr1", Name: "أحمد", Phone: &phone},
			University: &models.University{ID: "u1", Name: "جامعة الفيصل"},
		},
	}

	u := normalizeTrip(trip)
	if u.Source != "trips" {
		t.Errorf("source = %q", u.Source)
	}
	if u.TripTime != "08:00" {
		t.Errorf("tripTime = %q, want 24-hour 08:00", u.TripTime)
	}
	if u.StudentsCount != 30 {
		t.Errorf("studentsCount = %d", u.StudentsCount)
	}
	if u.Route.Bus == nil || u.Route.Bus.BusNumber != "BUS-001" {
		t.Errorf("bus = %+v", u.Route.Bus)
	}
	if u.Route.Driver == nil || u.Route.Driver.Name != "أحمد" {
		t.Errorf("driver = %+v", u.Route.Driver)
	}
	if u.Route.University == nil || u.Route.University.Name != "جامعة الفيصل" {
		t.Errorf("university = %+v", u.Route.University)
	}
}

func TestNormalizeRouteTripKeepsLabel(t *testing.T) {
	rt := models.RouteTrip{
		ID:            "rt1",
		RouteID:       "r1",
		TripDate:      day("2025-03-01"),
		Direction:     models.DirectionReturn,
		TripTime:      "3:30 PM",
		StudentsCount: 18,
		Status:        models.StatusArrived,
		Route: &models.Route{
			ID:  "r1",
			Bus: &models.Bus{ID: "b1", BusNumber: "BUS-001"},
		},
	}

	u := normalizeRouteTrip(rt)
	if u.Source != "route_trips" {
		t.Errorf("source = %q", u.Source)
	}
	if u.TripTime != "3:30 PM" {
		t.Errorf("tripTime = %q, the stored label must pass through untouched", u.TripTime)
	}
	if u.Notes != nil {
		t.Error("legacy rows carry no notes")
	}
	if u.Route.ID != "r1" {
		t.Errorf("route id = %q", u.Route.ID)
	}
}
