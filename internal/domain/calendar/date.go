package calendar

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// layouts accepted on input, most precise first. Career dates usually only
// carry a month, so day and time are optional.
var layouts = []string{time.RFC3339Nano, time.DateOnly, "2006-01"}

// Date is a point on a career timeline. It marshals as RFC3339 and keeps the
// offset it was given; date-only input is taken as midnight UTC.
type Date struct {
	time.Time
}

func New(year int, month time.Month) Date {
	return Date{Time: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

func Parse(s string) (Date, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}, nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: want YYYY-MM, YYYY-MM-DD or RFC3339", s)
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthYear renders the month and year in the date's own offset, e.g. "Mar 2021".
func (d Date) MonthYear() string {
	return d.Format("Jan 2006")
}
