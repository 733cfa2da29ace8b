package models

import (
	"testing"
	"time"
)

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 3, 15, 18, 45, 12, 999, time.FixedZone("X", 3*3600))
	got := DateOnly(ts)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DateOnly = %v, want %v", got, want)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, evening) {
		t.Error("same calendar day reported as different")
	}
	if SameDay(evening, nextDay) {
		t.Error("different calendar days reported as same")
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-10", 9},
		{"2024-01-10", "2024-01-01", -9},
		{"2024-02-28", "2024-03-01", 2}, // leap year
	}
	for _, tc := range cases {
		from, _ := ParseDate(tc.from)
		to, _ := ParseDate(tc.to)
		if got := DaysBetween(from, to); got != tc.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("ParseDate = %v, want %v", got, want)
	}

	if _, err := ParseDate("01.06.2024"); err == nil {
		t.Fatal("ParseDate accepted a non-ISO date")
	}
}
