package analytics

import "time"

// DateFilter names a symbolic dashboard date window
type DateFilter string

const (
	Filter30Days  DateFilter = "30days"
	Filter6Months DateFilter = "6months"
	Filter1Year   DateFilter = "1year"
	FilterCustom  DateFilter = "custom"
)

// DateRange is an inclusive [Start, End] window of ISO dates (YYYY-MM-DD)
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

const isoDate = "2006-01-02"

// DateRangeFor maps a symbolic filter to a concrete range anchored at now.
// The custom filter returns the caller-supplied bounds verbatim.
func DateRangeFor(filter DateFilter, custom *DateRange, now time.Time) DateRange {
	end := now.Format(isoDate)

	switch filter {
	case Filter30Days:
		return DateRange{Start: now.AddDate(0, 0, -30).Format(isoDate), End: end}
	case Filter6Months:
		return DateRange{Start: now.AddDate(0, -6, 0).Format(isoDate), End: end}
	case Filter1Year:
		return DateRange{Start: now.AddDate(-1, 0, 0).Format(isoDate), End: end}
	case FilterCustom:
		if custom != nil {
			return *custom
		}
		return DateRange{Start: end, End: end}
	default:
		return DateRange{Start: end, End: end}
	}
}

// IsDateInRange reports whether an ISO date falls inside the range,
// bounds included. ISO dates order lexicographically.
func IsDateInRange(date string, r DateRange) bool {
	return date >= r.Start && date <= r.End
}

// MonthOf extracts the YYYY-MM calendar month from an ISO date
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// CurrentMonth returns the YYYY-MM calendar month of the given time
func CurrentMonth(now time.Time) string {
	return now.Format("2006-01")
}
