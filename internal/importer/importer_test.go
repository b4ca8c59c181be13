package importer

import (
	"errors"
	"strings"
	"testing"

	"uni_fleet/internal/models"
)

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"routes.xlsx", true},
		{"routes.XLSX", true},
		{"legacy.xls", true},
		{"export.csv", true},
		{"notes.txt", false},
		{"noext", false},
	}
	for _, tt := range tests {
		if got := SupportedExtension(tt.filename); got != tt.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestParseCSV(t *testing.T) {
	csvData := "الجامعة,السائق,الباص,المندوب\n" +
		"جامعة الملك سعود,أحمد محمد,BUS-001,سالم\n" +
		"جامعة الفيصل,خالد عبدالله,BUS-002,سالم\n"

	rows, err := ParseFile("upload.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["الجامعة"] != "جامعة الملك سعود" {
		t.Errorf("row 0 university = %q", rows[0]["الجامعة"])
	}
	if rows[1]["الباص"] != "BUS-002" {
		t.Errorf("row 1 bus = %q", rows[1]["الباص"])
	}
}

func TestParseCSVSkipsEmptyCellsAndRows(t *testing.T) {
	csvData := "الجامعة,السائق\n" +
		"جامعة الفيصل,\n" +
		",\n"

	rows, err := ParseFile("upload.csv", strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (blank row dropped)", len(rows))
	}
	if _, ok := rows[0]["السائق"]; ok {
		t.Error("empty cell should be absent from the row map")
	}
}

func TestParseEmptyFile(t *testing.T) {
	_, err := ParseFile("upload.csv", strings.NewReader("الجامعة,السائق\n"))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("header-only file: err = %v, want ErrEmptyFile", err)
	}

	_, err = ParseFile("upload.csv", strings.NewReader(""))
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("empty file: err = %v, want ErrEmptyFile", err)
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := ParseFile("upload.txt", strings.NewReader("x"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFieldAliases(t *testing.T) {
	tests := []struct {
		name      string
		row       Row
		canonical string
		want      string
	}{
		{"primary arabic header", Row{"الجامعة": "جامعة الفيصل"}, "university", "جامعة الفيصل"},
		{"alternate arabic header", Row{"اسم الجامعة": "جامعة الفيصل"}, "university", "جامعة الفيصل"},
		{"english fallback", Row{"Driver": "Ali"}, "driver", "Ali"},
		{"primary wins over fallback", Row{"السائق": "أحمد", "Driver": "Ali"}, "driver", "أحمد"},
		{"missing", Row{}, "bus", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.row.Field(tt.canonical); got != tt.want {
				t.Errorf("Field(%q) = %q, want %q", tt.canonical, got, tt.want)
			}
		})
	}
}

func TestMapRowSlots(t *testing.T) {
	row := Row{
		"الجامعة":          "جامعة الملك سعود",
		"السائق":           "أحمد",
		"الباص":            "BUS-001",
		"المندوب":          "سالم",
		"عدد رحلات الذهاب": "3",
		"عدد رحلات العودة": "2",
		"ذهاب_7:30 AM":     "12",
		"ذهاب_8:30 AM":     "7",
		"عودة_3:30 PM":     "25",
	}

	mapped := MapRow(row)
	if mapped.University != "جامعة الملك سعود" || mapped.Bus != "BUS-001" {
		t.Errorf("canonical fields not mapped: %+v", mapped)
	}
	if mapped.GoTrips != 3 || mapped.ReturnTrips != 2 {
		t.Errorf("trip counts = %d/%d, want 3/2", mapped.GoTrips, mapped.ReturnTrips)
	}
	if len(mapped.Slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(mapped.Slots))
	}

	var goCount, returnCount int
	for _, s := range mapped.Slots {
		switch s.Direction {
		case models.DirectionGo:
			goCount++
		case models.DirectionReturn:
			returnCount++
			if s.TripTime != "3:30 PM" || s.StudentsCount != 25 {
				t.Errorf("return slot = %+v", s)
			}
		}
	}
	if goCount != 2 || returnCount != 1 {
		t.Errorf("direction split = %d GO / %d RETURN, want 2/1", goCount, returnCount)
	}
}

func TestMapRowBareTimeColumnFeedsBothDirections(t *testing.T) {
	// "12:30 PM" exists in both slot lists; a bare cell creates a GO and
	// a RETURN trip, as the accepted sheets have always done.
	row := Row{"12:30 PM": "10"}
	mapped := MapRow(row)
	if len(mapped.Slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(mapped.Slots))
	}
	if mapped.Slots[0].Direction == mapped.Slots[1].Direction {
		t.Error("expected one GO and one RETURN slot")
	}
}

func TestMapRowPrefixWinsOverBareLabel(t *testing.T) {
	row := Row{"ذهاب_7:30 AM": "5", "7:30 AM": "9"}
	mapped := MapRow(row)
	if len(mapped.Slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(mapped.Slots))
	}
	if mapped.Slots[0].StudentsCount != 5 {
		t.Errorf("students = %d, want the prefixed cell's 5", mapped.Slots[0].StudentsCount)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{" 7 ", 7},
		{"3.0", 3},
		{"", 0},
		{"x", 0},
		{"نعم", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.in); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
