package report

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DatesInRange expands [start, end] into the inclusive list of YYYY-MM-DD
// dates. An empty end means a single-date range. End before start is
// rejected before any generation is attempted.
func DatesInRange(start, end string) ([]string, error) {
	if start == "" {
		return nil, fmt.Errorf("start date is required")
	}
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to := from
	if end != "" {
		to, err = time.Parse(dateLayout, end)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", end, err)
		}
	}
	if to.Before(from) {
		return nil, fmt.Errorf("end date %s cannot be before start date %s", end, start)
	}
	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}
