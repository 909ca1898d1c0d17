package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/moodflix/internal/domain"
)

// timeLayout is fixed width so stored timestamps sort lexically in time
// order, down to the nanosecond.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

func encodeSlots(s domain.Slots) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding slots: %w", err)
	}
	return string(b), nil
}

// decodeSlots tolerates empty and legacy values by returning zero slots.
func decodeSlots(raw string) domain.Slots {
	var s domain.Slots
	if raw == "" {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.Slots{}
	}
	return s
}

// nowUTC returns the current UTC time.
func nowUTC() time.Time {
	return time.Now().UTC()
}
