package analytics

import (
	"sort"
	"time"

	"rentman-service/internal/model"
)

// DashboardStats summarises rent logs inside a date window
type DashboardStats struct {
	TotalRentCollected   float64 `json:"totalRentCollected"`
	TotalElectricityBill float64 `json:"totalElectricityBill"`
	TotalLogs            int     `json:"totalLogs"`
}

// MonthlyStat is one calendar-month bucket of rent and electricity sums
type MonthlyStat struct {
	Month       string  `json:"month"`
	Rent        float64 `json:"rent"`
	Electricity float64 `json:"electricity"`
}

// PendingSummary lists active tenants with no payment recorded in the
// current calendar month, with the sum of their monthly rents
type PendingSummary struct {
	Tenants      []model.Tenant `json:"tenants"`
	TotalPending float64        `json:"totalPending"`
}

// ComputeDashboardStats sums rentPaid and meterBill over the logs whose
// date falls inside the range, bounds included
func ComputeDashboardStats(logs []model.RentLog, r DateRange) DashboardStats {
	var stats DashboardStats
	for _, log := range logs {
		if !IsDateInRange(log.Date, r) {
			continue
		}
		stats.TotalRentCollected += log.RentPaid
		stats.TotalElectricityBill += log.MeterBill
		stats.TotalLogs++
	}
	return stats
}

// ComputeMonthlyStats groups the matching logs by calendar month, summing
// rent and electricity per month. Months are returned ascending; months
// with no logs are omitted.
func ComputeMonthlyStats(logs []model.RentLog, r DateRange) []MonthlyStat {
	buckets := make(map[string]*MonthlyStat)
	for _, log := range logs {
		if !IsDateInRange(log.Date, r) {
			continue
		}
		month := MonthOf(log.Date)
		bucket, ok := buckets[month]
		if !ok {
			bucket = &MonthlyStat{Month: month}
			buckets[month] = bucket
		}
		bucket.Rent += log.RentPaid
		bucket.Electricity += log.MeterBill
	}

	months := make([]MonthlyStat, 0, len(buckets))
	for _, bucket := range buckets {
		months = append(months, *bucket)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month < months[j].Month
	})
	return months
}

// PendingPayers returns the active tenants with no rent log dated in the
// calendar month of now. Matching is keyed by tenant ID, so tenants
// sharing a name stay distinct.
func PendingPayers(tenants []model.Tenant, logs []model.RentLog, now time.Time) PendingSummary {
	month := CurrentMonth(now)

	paid := make(map[string]struct{})
	for _, log := range logs {
		if MonthOf(log.Date) == month {
			paid[log.TenantID] = struct{}{}
		}
	}

	summary := PendingSummary{Tenants: []model.Tenant{}}
	for _, tenant := range tenants {
		if tenant.IsArchived {
			continue
		}
		if _, ok := paid[tenant.ID]; ok {
			continue
		}
		summary.Tenants = append(summary.Tenants, tenant)
		summary.TotalPending += tenant.MonthlyRent
	}
	return summary
}

// TenantFinancialSummary aggregates the full payment history of one tenant
type TenantFinancialSummary struct {
	TotalRentPaid        float64 `json:"totalRentPaid"`
	TotalElectricityBill float64 `json:"totalElectricityBill"`
	TotalAmountPaid      float64 `json:"totalAmountPaid"`
	TotalMonthsOccupied  int     `json:"totalMonthsOccupied"`
}

// ComputeTenantFinancialSummary totals a tenant's rent logs and counts the
// distinct calendar months with at least one payment
func ComputeTenantFinancialSummary(logs []model.RentLog) TenantFinancialSummary {
	var summary TenantFinancialSummary
	months := make(map[string]struct{})
	for _, log := range logs {
		summary.TotalRentPaid += log.RentPaid
		summary.TotalElectricityBill += log.MeterBill
		summary.TotalAmountPaid += log.Total
		months[MonthOf(log.Date)] = struct{}{}
	}
	summary.TotalMonthsOccupied = len(months)
	return summary
}
