package importer

import (
	"strconv"
	"strings"

	"uni_fleet/internal/models"
)

// columnAliases maps each canonical field to the headers that may carry it.
// Arabic headers are the primary form; English ones are fallbacks. Lookup
// order follows slice order.
var columnAliases = map[string][]string{
	"university":     {"الجامعة", "اسم الجامعة", "University"},
	"driver":         {"السائق", "اسم السائق", "Driver"},
	"bus":            {"الباص", "رقم الباص", "Bus"},
	"representative": {"المندوب", "اسم المندوب", "Representative"},
	"goTrips":        {"عدد رحلات الذهاب", "Go Trips"},
	"returnTrips":    {"عدد رحلات العودة", "Return Trips"},
}

// GoTimes and ReturnTimes are the recognized time-slot columns. "المجمّع"
// (the compound) is a named slot, not a clock time.
var (
	GoTimes = []string{
		"7:30 AM", "8:30 AM", "9:30 AM", "10:30 AM", "11:30 AM",
		"12:30 PM", "1:30 PM", "2:30 PM", "المجمّع",
	}
	ReturnTimes = []string{
		"12:30 PM", "1:30 PM", "2:30 PM", "3:30 PM", "4:30 PM",
		"5:30 PM", "المجمّع",
	}
)

// TripSlot is one recognized time-slot cell in a row.
type TripSlot struct {
	Direction     models.TripDirection
	TripTime      string
	StudentsCount int
}

// RouteRow is the canonical form of one spreadsheet row.
type RouteRow struct {
	University     string
	Driver         string
	Bus            string
	Representative string
	GoTrips        int
	ReturnTrips    int
	Slots          []TripSlot
}

// Field resolves a canonical field name through the alias table.
func (r Row) Field(canonical string) string {
	for _, header := range columnAliases[canonical] {
		if v, ok := r[header]; ok {
			return v
		}
	}
	return ""
}

// MapRow converts a raw row into its canonical form, collecting every
// time-slot column with a truthy cell. The GO prefix is checked before the
// bare label, matching the accepted sheet layouts.
func MapRow(row Row) RouteRow {
	out := RouteRow{
		University:     row.Field("university"),
		Driver:         row.Field("driver"),
		Bus:            row.Field("bus"),
		Representative: row.Field("representative"),
		GoTrips:        parseCount(row.Field("goTrips")),
		ReturnTrips:    parseCount(row.Field("returnTrips")),
	}

	for _, t := range GoTimes {
		if cell := slotCell(row, "ذهاب_", t); cell != "" {
			out.Slots = append(out.Slots, TripSlot{
				Direction:     models.DirectionGo,
				TripTime:      t,
				StudentsCount: parseCount(cell),
			})
		}
	}
	for _, t := range ReturnTimes {
		if cell := slotCell(row, "عودة_", t); cell != "" {
			out.Slots = append(out.Slots, TripSlot{
				Direction:     models.DirectionReturn,
				TripTime:      t,
				StudentsCount: parseCount(cell),
			})
		}
	}
	return out
}

func slotCell(row Row, prefix, label string) string {
	if v, ok := row[prefix+label]; ok {
		return v
	}
	return row[label]
}

// parseCount reads a leading integer the way the original sheets are
// filled in; anything non-numeric counts as zero students.
func parseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
