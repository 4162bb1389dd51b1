package analytics

import "math"

// Tolerance used when comparing client-supplied derived amounts against the
// server-side computation
const derivedTolerance = 1e-6

// Derived holds the amounts computed from a rent log's inputs
type Derived struct {
	Units     float64
	MeterBill float64
	Total     float64
}

// DeriveAmounts computes units, meter bill and total from the raw inputs:
// units = current - previous, meterBill = units * unitPrice,
// total = rentPaid + meterBill.
func DeriveAmounts(previousMeterReading, currentMeterReading, unitPrice, rentPaid float64) Derived {
	units := currentMeterReading - previousMeterReading
	meterBill := units * unitPrice
	return Derived{
		Units:     units,
		MeterBill: meterBill,
		Total:     rentPaid + meterBill,
	}
}

// Consistent reports whether client-supplied derived values match the
// computation within floating-point tolerance
func (d Derived) Consistent(units, meterBill, total float64) bool {
	return math.Abs(d.Units-units) < derivedTolerance &&
		math.Abs(d.MeterBill-meterBill) < derivedTolerance &&
		math.Abs(d.Total-total) < derivedTolerance
}
