package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var clockLabel = regexp.MustCompile(`(\d+):(\d+)\s*(AM|PM)`)

// GenerateTimeSlots returns the half-hour schedule grid from 7:00 AM to
// 6:00 PM as 12-hour labels ("7:00 AM", "7:30 AM", ...).
func GenerateTimeSlots() []string {
	var slots []string
	for hour := 7; hour <= 18; hour++ {
		for minute := 0; minute < 60; minute += 30 {
			// stop at 6:00 PM, skip 6:30 PM
			if hour == 18 && minute > 0 {
				break
			}
			hour12 := hour
			if hour > 12 {
				hour12 = hour - 12
			}
			ampm := "AM"
			if hour >= 12 {
				ampm = "PM"
			}
			slots = append(slots, fmt.Sprintf("%d:%02d %s", hour12, minute, ampm))
		}
	}
	return slots
}

// To24Hour converts a label like "7:00 AM" to "07:00". Labels that do not
// look like a clock time come back unchanged.
func To24Hour(label string) string {
	m := clockLabel.FindStringSubmatch(strings.ToUpper(label))
	if m == nil {
		return label
	}
	hour, _ := strconv.Atoi(m[1])
	if m[3] == "PM" && hour != 12 {
		hour += 12
	} else if m[3] == "AM" && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%s", hour, m[2])
}

// To12Hour converts "07:00" to "7:00 AM". Malformed input comes back
// unchanged.
func To12Hour(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	ampm := "AM"
	if hour >= 12 {
		ampm = "PM"
	}
	hour12 := hour
	switch {
	case hour > 12:
		hour12 = hour - 12
	case hour == 0:
		hour12 = 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, parts[1], ampm)
}
