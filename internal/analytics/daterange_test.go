package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDateRangeFor30Days(t *testing.T) {
	r := DateRangeFor(Filter30Days, nil, date("2025-02-15"))

	assert.Equal(t, "2025-01-16", r.Start)
	assert.Equal(t, "2025-02-15", r.End)
}

func TestDateRangeFor6Months(t *testing.T) {
	r := DateRangeFor(Filter6Months, nil, date("2025-02-15"))

	assert.Equal(t, "2024-08-15", r.Start)
	assert.Equal(t, "2025-02-15", r.End)
}

func TestDateRangeFor1Year(t *testing.T) {
	r := DateRangeFor(Filter1Year, nil, date("2025-02-15"))

	assert.Equal(t, "2024-02-15", r.Start)
	assert.Equal(t, "2025-02-15", r.End)
}

func TestDateRangeForCustomVerbatim(t *testing.T) {
	// Custom bounds are taken as given, even when start > end
	custom := &DateRange{Start: "2025-06-01", End: "2025-01-01"}
	r := DateRangeFor(FilterCustom, custom, date("2025-02-15"))

	assert.Equal(t, *custom, r)
}

func TestDateRangeForCustomMissingBounds(t *testing.T) {
	r := DateRangeFor(FilterCustom, nil, date("2025-02-15"))

	assert.Equal(t, DateRange{Start: "2025-02-15", End: "2025-02-15"}, r)
}

func TestDateRangeForUnknownFilter(t *testing.T) {
	r := DateRangeFor(DateFilter("fortnight"), nil, date("2025-02-15"))

	assert.Equal(t, DateRange{Start: "2025-02-15", End: "2025-02-15"}, r)
}

func TestIsDateInRangeInclusiveBounds(t *testing.T) {
	r := DateRange{Start: "2025-01-01", End: "2025-01-31"}

	assert.True(t, IsDateInRange("2025-01-01", r))
	assert.True(t, IsDateInRange("2025-01-31", r))
	assert.True(t, IsDateInRange("2025-01-15", r))
	assert.False(t, IsDateInRange("2024-12-31", r))
	assert.False(t, IsDateInRange("2025-02-01", r))
}

func TestMonthOf(t *testing.T) {
	assert.Equal(t, "2025-02", MonthOf("2025-02-15"))
	assert.Equal(t, "2025", MonthOf("2025"))
}

func TestCurrentMonth(t *testing.T) {
	assert.Equal(t, "2025-02", CurrentMonth(date("2025-02-15")))
}
