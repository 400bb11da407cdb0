package utils

import (
	"errors"
	"time"
)

var ErrEmptyDate = errors.New("date is required")

func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, ErrEmptyDate
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// DateRange retorna todos os dias entre start e end, inclusive
func DateRange(start, end time.Time) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)

	dates := make([]time.Time, 0)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}

	return dates
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
