package timeutil

import "testing"

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots()

	// 7:00 AM through 6:00 PM at half-hour steps is 23 slots
	if len(slots) != 23 {
		t.Fatalf("got %d slots, want 23", len(slots))
	}
	if slots[0] != "7:00 AM" {
		t.Errorf("first slot = %q, want 7:00 AM", slots[0])
	}
	if slots[len(slots)-1] != "6:00 PM" {
		t.Errorf("last slot = %q, want 6:00 PM", slots[len(slots)-1])
	}
	for _, s := range slots {
		if s == "6:30 PM" {
			t.Error("6:30 PM must not be generated")
		}
	}
}

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"7:00 AM", "07:00"},
		{"12:30 PM", "12:30"},
		{"12:15 AM", "00:15"},
		{"1:30 PM", "13:30"},
		{"11:45 PM", "23:45"},
		{"8:30 am", "08:30"},
		{"المجمّع", "المجمّع"},
		{"not a time", "not a time"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := To24Hour(tt.in); got != tt.want {
				t.Errorf("To24Hour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTo12Hour(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"07:00", "7:00 AM"},
		{"00:15", "12:15 AM"},
		{"12:30", "12:30 PM"},
		{"13:30", "1:30 PM"},
		{"23:45", "11:45 PM"},
		{"garbage", "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := To12Hour(tt.in); got != tt.want {
				t.Errorf("To12Hour(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	for _, slot := range GenerateTimeSlots() {
		if got := To12Hour(To24Hour(slot)); got != slot {
			t.Errorf("round trip of %q yielded %q", slot, got)
		}
	}
}
