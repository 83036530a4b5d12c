package services

import (
	"fmt"
	"time"
)

// ParseDate parses a date string in typical formats (YYYY-MM-DD)
// It enforces strict checks but centralizes the logic for future format additions
func ParseDate(dateStr string) (time.Time, error) {
	// Primary format: ISO 8601 (standard for HTML5 date inputs)
	layout := "2006-01-02"

	parsedTime, err := time.Parse(layout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: expected YYYY-MM-DD")
	}

	return parsedTime, nil
}

// ParseHora parses a strict HH:mm time-of-day string
func ParseHora(horaStr string) (time.Time, error) {
	parsed, err := time.Parse("15:04", horaStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: expected HH:mm")
	}
	return parsed, nil
}

// IsFutureDate reports whether the given date falls after today (local time,
// day granularity)
func IsFutureDate(t time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidate := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	return candidate.After(today)
}
