package handler

import (
	"net/http"
	"strconv"
	"time"

	"rentman-service/internal/analytics"
	"rentman-service/internal/middleware"
	"rentman-service/internal/model"
	"rentman-service/pkg/database"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RentLogRequest defines the structure for rent log creation requests.
// The derived amounts (units, meterBill, total) must be supplied and must
// match the server-side computation.
type RentLogRequest struct {
	TenantID             string   `json:"tenantId"`
	TenantName           string   `json:"tenantName"`
	Date                 string   `json:"date"`
	RentPaid             *float64 `json:"rentPaid"`
	PreviousMeterReading *float64 `json:"previousMeterReading"`
	CurrentMeterReading  *float64 `json:"currentMeterReading"`
	Units                *float64 `json:"units"`
	UnitPrice            *float64 `json:"unitPrice"`
	MeterBill            *float64 `json:"meterBill"`
	Total                *float64 `json:"total"`
	Collector            string   `json:"collector"`
	PaymentMode          string   `json:"paymentMode"`
	Notes                string   `json:"notes"`
}

// RentLogUpdateRequest defines the structure for partial rent log updates
type RentLogUpdateRequest struct {
	TenantName           *string  `json:"tenantName"`
	Date                 *string  `json:"date"`
	RentPaid             *float64 `json:"rentPaid"`
	PreviousMeterReading *float64 `json:"previousMeterReading"`
	CurrentMeterReading  *float64 `json:"currentMeterReading"`
	UnitPrice            *float64 `json:"unitPrice"`
	Collector            *string  `json:"collector"`
	PaymentMode          *string  `json:"paymentMode"`
	Notes                *string  `json:"notes"`
}

func (r *RentLogRequest) validate() string {
	switch {
	case r.TenantID == "":
		return "tenantId is required"
	case r.TenantName == "":
		return "tenantName is required"
	case r.Date == "":
		return "date is required"
	case r.RentPaid == nil:
		return "rentPaid is required"
	case r.PreviousMeterReading == nil:
		return "previousMeterReading is required"
	case r.CurrentMeterReading == nil:
		return "currentMeterReading is required"
	case r.Units == nil:
		return "units is required"
	case r.UnitPrice == nil:
		return "unitPrice is required"
	case r.MeterBill == nil:
		return "meterBill is required"
	case r.Total == nil:
		return "total is required"
	case r.Collector == "":
		return "collector is required"
	case r.PaymentMode == "":
		return "paymentMode is required"
	}
	if !model.ValidPaymentMode(r.PaymentMode) {
		return "paymentMode must be online or cash"
	}
	if *r.RentPaid < 0 || *r.UnitPrice < 0 || *r.PreviousMeterReading < 0 {
		return "amounts must be non-negative"
	}
	if *r.CurrentMeterReading < *r.PreviousMeterReading {
		return "currentMeterReading must not be below previousMeterReading"
	}
	derived := analytics.DeriveAmounts(*r.PreviousMeterReading, *r.CurrentMeterReading, *r.UnitPrice, *r.RentPaid)
	if !derived.Consistent(*r.Units, *r.MeterBill, *r.Total) {
		return "units, meterBill and total do not match the supplied readings"
	}
	return ""
}

// findRentLog loads a rent log by id scoped to the calling user
func findRentLog(userID, id string) (*model.RentLog, error) {
	var rentLog model.RentLog
	err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&rentLog).Error
	if err != nil {
		return nil, err
	}
	return &rentLog, nil
}

// ListRentLogs handles retrieving all rent logs of the calling user
func ListRentLogs(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to list rent logs", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// GetRentLog handles retrieving a single rent log by ID
func GetRentLog(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	rentLog, err := findRentLog(userID, id)
	if err != nil {
		log.Warn("Rent log not found", zap.String("rent_log_id", id))
		return respondError(c, http.StatusNotFound, "rent log not found")
	}

	return respondData(c, http.StatusOK, rentLog)
}

// CreateRentLog records a payment event
func CreateRentLog(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	prometheus.RecordRentLogOperation("create")

	var req RentLogRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid rent log request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Rent log validation failed", zap.String("reason", msg))
		return respondError(c, http.StatusBadRequest, msg)
	}

	// The referenced tenant must belong to the caller
	if _, err := findTenant(userID, req.TenantID); err != nil {
		log.Warn("Tenant not found for rent log", zap.String("tenant_id", req.TenantID))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	rentLog := model.RentLog{
		UserID:               userID,
		TenantID:             req.TenantID,
		TenantName:           req.TenantName,
		Date:                 req.Date,
		RentPaid:             *req.RentPaid,
		PreviousMeterReading: *req.PreviousMeterReading,
		CurrentMeterReading:  *req.CurrentMeterReading,
		Units:                *req.Units,
		UnitPrice:            *req.UnitPrice,
		MeterBill:            *req.MeterBill,
		Total:                *req.Total,
		Collector:            req.Collector,
		PaymentMode:          req.PaymentMode,
		Notes:                req.Notes,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&rentLog); result.Error != nil {
		log.Error("Failed to create rent log", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to create rent log")
	}

	log.Info("Rent log created",
		zap.String("rent_log_id", rentLog.ID),
		zap.String("tenant_id", rentLog.TenantID),
		zap.Float64("total", rentLog.Total))
	return respondData(c, http.StatusCreated, rentLog)
}

// UpdateRentLog applies a partial update and re-derives the computed
// amounts from the resulting readings
func UpdateRentLog(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordRentLogOperation("update")

	var req RentLogUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid rent log update data", zap.String("rent_log_id", id), zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}

	rentLog, err := findRentLog(userID, id)
	if err != nil {
		log.Warn("Rent log not found for update", zap.String("rent_log_id", id))
		return respondError(c, http.StatusNotFound, "rent log not found")
	}

	if req.TenantName != nil {
		rentLog.TenantName = *req.TenantName
	}
	if req.Date != nil {
		rentLog.Date = *req.Date
	}
	if req.RentPaid != nil {
		if *req.RentPaid < 0 {
			return respondError(c, http.StatusBadRequest, "rentPaid must be non-negative")
		}
		rentLog.RentPaid = *req.RentPaid
	}
	if req.PreviousMeterReading != nil {
		rentLog.PreviousMeterReading = *req.PreviousMeterReading
	}
	if req.CurrentMeterReading != nil {
		rentLog.CurrentMeterReading = *req.CurrentMeterReading
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return respondError(c, http.StatusBadRequest, "unitPrice must be non-negative")
		}
		rentLog.UnitPrice = *req.UnitPrice
	}
	if req.Collector != nil {
		rentLog.Collector = *req.Collector
	}
	if req.PaymentMode != nil {
		if !model.ValidPaymentMode(*req.PaymentMode) {
			return respondError(c, http.StatusBadRequest, "paymentMode must be online or cash")
		}
		rentLog.PaymentMode = *req.PaymentMode
	}
	if req.Notes != nil {
		rentLog.Notes = *req.Notes
	}

	if rentLog.CurrentMeterReading < rentLog.PreviousMeterReading {
		return respondError(c, http.StatusBadRequest, "currentMeterReading must not be below previousMeterReading")
	}

	derived := analytics.DeriveAmounts(rentLog.PreviousMeterReading, rentLog.CurrentMeterReading, rentLog.UnitPrice, rentLog.RentPaid)
	rentLog.Units = derived.Units
	rentLog.MeterBill = derived.MeterBill
	rentLog.Total = derived.Total

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(rentLog); result.Error != nil {
		log.Error("Failed to update rent log", zap.String("rent_log_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to update rent log")
	}

	log.Info("Rent log updated", zap.String("rent_log_id", id))
	return respondData(c, http.StatusOK, rentLog)
}

// DeleteRentLog removes one rent log
func DeleteRentLog(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordRentLogOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	var deleted int64
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND rent_log_id = ?", userID, id).Delete(&model.UploadedFile{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.RentLog{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		log.Error("Failed to delete rent log", zap.String("rent_log_id", id), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to delete rent log")
	}
	if deleted == 0 {
		log.Warn("Rent log not found for deletion", zap.String("rent_log_id", id))
		return respondError(c, http.StatusNotFound, "rent log not found")
	}

	log.Info("Rent log deleted", zap.String("rent_log_id", id))
	return respondMessage(c, http.StatusOK, "rent log deleted successfully")
}

// GetRecentRentLogs returns the newest logs by creation time
func GetRecentRentLogs(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	limit := 10
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return respondError(c, http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to fetch recent rent logs", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// GetCurrentMonthRentLogs returns the logs dated in the current calendar month
func GetCurrentMonthRentLogs(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	month := analytics.CurrentMonth(time.Now())

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ? AND date LIKE ?", userID, month+"%").
		Order("date DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to fetch current month rent logs", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// SearchRentLogs finds logs whose tenant name, collector or notes contain
// the query
func SearchRentLogs(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	q := c.QueryParam("q")

	defer prometheus.TrackDBOperation("query")(time.Now())
	pattern := "%" + q + "%"
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ? AND (tenant_name LIKE ? OR collector LIKE ? OR notes LIKE ?)",
			userID, pattern, pattern, pattern).
		Order("date DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to search rent logs", zap.String("query", q), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to search rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// GetRentLogsByCollector returns the logs with an exact collector name match
func GetRentLogsByCollector(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	name := c.Param("name")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ? AND collector = ?", userID, name).
		Order("date DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to fetch rent logs by collector", zap.String("collector", name), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// GetRentLogsByTenant returns all logs of one tenant
func GetRentLogsByTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	tenantID := c.Param("tenantId")

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("date DESC, created_at DESC").
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to fetch rent logs by tenant", zap.String("tenant_id", tenantID), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}

// StatsRangeRequest selects a date window either by a symbolic filter
// (30days, 6months, 1year, custom) or by explicit start/end bounds
type StatsRangeRequest struct {
	Filter analytics.DateFilter `json:"filter"`
	Start  string               `json:"start"`
	End    string               `json:"end"`
}

// resolve turns the request into a concrete range anchored at now.
// Returns a non-empty message when the request is invalid.
func (r *StatsRangeRequest) resolve(now time.Time) (analytics.DateRange, string) {
	if r.Filter != "" && r.Filter != analytics.FilterCustom {
		return analytics.DateRangeFor(r.Filter, nil, now), ""
	}
	if r.Start == "" || r.End == "" {
		return analytics.DateRange{}, "start and end are required"
	}
	custom := analytics.DateRange{Start: r.Start, End: r.End}
	if r.Filter == analytics.FilterCustom {
		return analytics.DateRangeFor(r.Filter, &custom, now), ""
	}
	return custom, ""
}

// rangeLogs fetches the caller's logs inside an inclusive date range
func rangeLogs(userID string, r analytics.DateRange) ([]model.RentLog, error) {
	var logs []model.RentLog
	err := database.GetDB().
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, r.Start, r.End).
		Order("date DESC, created_at DESC").
		Find(&logs).Error
	return logs, err
}

// GetDashboardStats sums rent and electricity over a date range
func GetDashboardStats(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req StatsRangeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	r, msg := req.resolve(time.Now())
	if msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	logs, err := rangeLogs(userID, r)
	if err != nil {
		log.Error("Failed to fetch rent logs for dashboard stats", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to compute dashboard stats")
	}

	return respondData(c, http.StatusOK, analytics.ComputeDashboardStats(logs, r))
}

// GetMonthlyStats buckets rent and electricity sums per calendar month
func GetMonthlyStats(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req StatsRangeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	r, msg := req.resolve(time.Now())
	if msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	logs, err := rangeLogs(userID, r)
	if err != nil {
		log.Error("Failed to fetch rent logs for monthly stats", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to compute monthly stats")
	}

	return respondData(c, http.StatusOK, analytics.ComputeMonthlyStats(logs, r))
}

// GetRentLogsByDateRange returns the logs dated inside the given range
func GetRentLogsByDateRange(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req StatsRangeRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	r, msg := req.resolve(time.Now())
	if msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	logs, err := rangeLogs(userID, r)
	if err != nil {
		log.Error("Failed to fetch rent logs by date range", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to fetch rent logs")
	}

	return respondData(c, http.StatusOK, logs)
}
