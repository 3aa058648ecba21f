package reports

import (
	"errors"
	"time"
)

// GetDateRange returns the window for a preset, or for custom the inclusive
// days startStr..endStr ("2006-01-02"). ok is false for DateRangeAll.
func GetDateRange(dateRange, startStr, endStr string, now time.Time) (start, end time.Time, ok bool, err error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch dateRange {
	case "", DateRangeAll:
		return time.Time{}, time.Time{}, false, nil
	case DateRangeDaily:
		return today, today.AddDate(0, 0, 1).Add(-time.Nanosecond), true, nil
	case DateRangeWeekly:
		// last 7 days including today
		return today.AddDate(0, 0, -6), today.AddDate(0, 0, 1).Add(-time.Nanosecond), true, nil
	case DateRangeMonthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0).Add(-time.Nanosecond), true, nil
	case DateRangeCustom:
		if startStr == "" || endStr == "" {
			return time.Time{}, time.Time{}, false, errors.New("start_date and end_date required for custom range")
		}
		start, err := time.ParseInLocation("2006-01-02", startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		endDay, err := time.ParseInLocation("2006-01-02", endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		end := endDay.AddDate(0, 0, 1).Add(-time.Nanosecond)
		if start.After(end) {
			return time.Time{}, time.Time{}, false, errors.New("start_date must be before end_date")
		}
		return start, end, true, nil
	default:
		return time.Time{}, time.Time{}, false, errors.New("unknown date_range")
	}
}
