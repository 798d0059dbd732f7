package utils

import (
	"encoding/json"
	"time"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Time serializes as UTC with millisecond precision.
type Time struct {
	time.Time
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.UTC().Format(timeLayout))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, str)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
