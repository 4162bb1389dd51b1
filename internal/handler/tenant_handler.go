package handler

import (
	"net/http"
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

// TenantRequest defines the structure for tenant creation requests
type TenantRequest struct {
	Name              string   `json:"name"`
	PropertyName      string   `json:"propertyName"`
	MonthlyRent       *float64 `json:"monthlyRent"`
	SecurityDeposit   *float64 `json:"securityDeposit"`
	StartDate         string   `json:"startDate"`
	StartMeterReading string   `json:"startMeterReading"`
	PropertyType      string   `json:"propertyType"`
	PhoneNumber       *string  `json:"phoneNumber"`
	Notes             *string  `json:"notes"`
}

// TenantUpdateRequest defines the structure for partial tenant updates.
// Archival state is managed only through the archive/unarchive endpoints so
// closing_date stays consistent with is_archived.
type TenantUpdateRequest struct {
	Name              *string  `json:"name"`
	PropertyName      *string  `json:"propertyName"`
	MonthlyRent       *float64 `json:"monthlyRent"`
	SecurityDeposit   *float64 `json:"securityDeposit"`
	StartDate         *string  `json:"startDate"`
	StartMeterReading *string  `json:"startMeterReading"`
	PropertyType      *string  `json:"propertyType"`
	PhoneNumber       *string  `json:"phoneNumber"`
	Notes             *string  `json:"notes"`
}

// ArchiveRequest carries the closing details for archiving a tenant
type ArchiveRequest struct {
	ClosingDate  string `json:"closingDate"`
	ClosingNotes string `json:"closingNotes"`
}

func (r *TenantRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if r.PropertyName == "" {
		return "propertyName is required"
	}
	if r.MonthlyRent == nil {
		return "monthlyRent is required"
	}
	if *r.MonthlyRent < 0 {
		return "monthlyRent must be non-negative"
	}
	if r.SecurityDeposit == nil {
		return "securityDeposit is required"
	}
	if *r.SecurityDeposit < 0 {
		return "securityDeposit must be non-negative"
	}
	if r.StartDate == "" {
		return "startDate is required"
	}
	if r.StartMeterReading == "" {
		return "startMeterReading is required"
	}
	if !model.ValidPropertyType(r.PropertyType) {
		return "propertyType must be residential or commercial"
	}
	return ""
}

// findTenant loads a tenant by id scoped to the calling user
func findTenant(userID, id string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&tenant).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// ListTenants handles retrieving all tenants of the calling user
func ListTenants(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenants []model.Tenant
	result := database.GetDB().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tenants)
	if result.Error != nil {
		log.Error("Failed to list tenants", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch tenants")
	}

	return respondData(c, http.StatusOK, tenants)
}

// GetTenant handles retrieving a single tenant by ID
func GetTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	tenant, err := findTenant(userID, id)
	if err != nil {
		log.Warn("Tenant not found", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	return respondData(c, http.StatusOK, tenant)
}

// CreateTenant handles creating a new tenant
func CreateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	prometheus.RecordTenantOperation("create")

	var req TenantRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tenant request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if msg := req.validate(); msg != "" {
		log.Warn("Tenant validation failed", zap.String("reason", msg))
		return respondError(c, http.StatusBadRequest, msg)
	}

	tenant := model.Tenant{
		UserID:            userID,
		Name:              req.Name,
		PropertyName:      req.PropertyName,
		MonthlyRent:       *req.MonthlyRent,
		SecurityDeposit:   *req.SecurityDeposit,
		StartDate:         req.StartDate,
		StartMeterReading: req.StartMeterReading,
		PropertyType:      req.PropertyType,
		PhoneNumber:       req.PhoneNumber,
		Notes:             req.Notes,
		IsArchived:        false,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&tenant); result.Error != nil {
		log.Error("Failed to create tenant", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to create tenant")
	}

	log.Info("Tenant created",
		zap.String("tenant_id", tenant.ID),
		zap.String("name", tenant.Name),
		zap.String("property", tenant.PropertyName))
	return respondData(c, http.StatusCreated, tenant)
}

// UpdateTenant handles partial updates of an existing tenant
func UpdateTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTenantOperation("update")

	var req TenantUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid tenant update data", zap.String("tenant_id", id), zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}

	tenant, err := findTenant(userID, id)
	if err != nil {
		log.Warn("Tenant not found for update", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	if req.Name != nil {
		tenant.Name = *req.Name
	}
	if req.PropertyName != nil {
		tenant.PropertyName = *req.PropertyName
	}
	if req.MonthlyRent != nil {
		if *req.MonthlyRent < 0 {
			return respondError(c, http.StatusBadRequest, "monthlyRent must be non-negative")
		}
		tenant.MonthlyRent = *req.MonthlyRent
	}
	if req.SecurityDeposit != nil {
		if *req.SecurityDeposit < 0 {
			return respondError(c, http.StatusBadRequest, "securityDeposit must be non-negative")
		}
		tenant.SecurityDeposit = *req.SecurityDeposit
	}
	if req.StartDate != nil {
		tenant.StartDate = *req.StartDate
	}
	if req.StartMeterReading != nil {
		tenant.StartMeterReading = *req.StartMeterReading
	}
	if req.PropertyType != nil {
		if !model.ValidPropertyType(*req.PropertyType) {
			return respondError(c, http.StatusBadRequest, "propertyType must be residential or commercial")
		}
		tenant.PropertyType = *req.PropertyType
	}
	if req.PhoneNumber != nil {
		tenant.PhoneNumber = req.PhoneNumber
	}
	if req.Notes != nil {
		tenant.Notes = req.Notes
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(tenant); result.Error != nil {
		log.Error("Failed to update tenant", zap.String("tenant_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to update tenant")
	}

	log.Info("Tenant updated", zap.String("tenant_id", id))
	return respondData(c, http.StatusOK, tenant)
}

// DeleteTenant removes a tenant together with its rent logs and files
func DeleteTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTenantOperation("delete")

	if _, err := findTenant(userID, id); err != nil {
		log.Warn("Tenant not found for deletion", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		// Files hang off the tenant directly or off one of its rent logs
		var logIDs []string
		if err := tx.Model(&model.RentLog{}).Where("tenant_id = ?", id).Pluck("id", &logIDs).Error; err != nil {
			return err
		}
		if len(logIDs) > 0 {
			if err := tx.Where("rent_log_id IN ?", logIDs).Delete(&model.UploadedFile{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&model.UploadedFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&model.RentLog{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Tenant{}).Error
	})
	if err != nil {
		log.Error("Failed to delete tenant", zap.String("tenant_id", id), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to delete tenant")
	}

	log.Info("Tenant deleted with its rent logs", zap.String("tenant_id", id))
	return respondMessage(c, http.StatusOK, "tenant deleted successfully")
}

// ArchiveTenant soft-deactivates a tenant, keeping its history
func ArchiveTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTenantOperation("archive")

	var req ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if req.ClosingDate == "" {
		return respondError(c, http.StatusBadRequest, "closingDate is required")
	}

	tenant, err := findTenant(userID, id)
	if err != nil {
		log.Warn("Tenant not found for archive", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	tenant.IsArchived = true
	tenant.ClosingDate = &req.ClosingDate
	tenant.ClosingNotes = &req.ClosingNotes

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(tenant); result.Error != nil {
		log.Error("Failed to archive tenant", zap.String("tenant_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to archive tenant")
	}

	log.Info("Tenant archived",
		zap.String("tenant_id", id),
		zap.String("closing_date", req.ClosingDate))
	return respondData(c, http.StatusOK, tenant)
}

// UnarchiveTenant reactivates an archived tenant and clears closing fields
func UnarchiveTenant(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordTenantOperation("unarchive")

	tenant, err := findTenant(userID, id)
	if err != nil {
		log.Warn("Tenant not found for unarchive", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	updates := map[string]interface{}{
		"is_archived":   false,
		"closing_date":  nil,
		"closing_notes": nil,
	}
	if err := database.GetDB().Model(tenant).Updates(updates).Error; err != nil {
		log.Error("Failed to unarchive tenant", zap.String("tenant_id", id), zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to unarchive tenant")
	}

	tenant.IsArchived = false
	tenant.ClosingDate = nil
	tenant.ClosingNotes = nil

	log.Info("Tenant unarchived", zap.String("tenant_id", id))
	return respondData(c, http.StatusOK, tenant)
}

// GetActiveTenants lists tenants that are not archived
func GetActiveTenants(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenants []model.Tenant
	result := database.GetDB().
		Where("user_id = ? AND is_archived = ?", userID, false).
		Order("created_at DESC").
		Find(&tenants)
	if result.Error != nil {
		log.Error("Failed to list active tenants", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch tenants")
	}

	return respondData(c, http.StatusOK, tenants)
}

// GetArchivedTenants lists archived tenants, most recently closed first
func GetArchivedTenants(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var tenants []model.Tenant
	result := database.GetDB().
		Where("user_id = ? AND is_archived = ?", userID, true).
		Order("closing_date DESC").
		Find(&tenants)
	if result.Error != nil {
		log.Error("Failed to list archived tenants", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch tenants")
	}

	return respondData(c, http.StatusOK, tenants)
}

// SearchTenants finds tenants whose name or property name contains the query
func SearchTenants(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	q := c.QueryParam("q")

	defer prometheus.TrackDBOperation("query")(time.Now())
	pattern := "%" + q + "%"
	var tenants []model.Tenant
	result := database.GetDB().
		Where("user_id = ? AND (name LIKE ? OR property_name LIKE ?)", userID, pattern, pattern).
		Order("created_at DESC").
		Find(&tenants)
	if result.Error != nil {
		log.Error("Failed to search tenants", zap.String("query", q), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to search tenants")
	}

	return respondData(c, http.StatusOK, tenants)
}

// GetPendingPayments lists active tenants with no rent log this month
func GetPendingPayments(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	now := time.Now()
	month := analytics.CurrentMonth(now)

	defer prometheus.TrackDBOperation("query")(time.Now())
	db := database.GetDB()

	var tenants []model.Tenant
	if result := db.Where("user_id = ? AND is_archived = ?", userID, false).Order("name").Find(&tenants); result.Error != nil {
		log.Error("Failed to fetch tenants for pending payments", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch pending payments")
	}

	var logs []model.RentLog
	if result := db.Where("user_id = ? AND date LIKE ?", userID, month+"%").Find(&logs); result.Error != nil {
		log.Error("Failed to fetch rent logs for pending payments", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch pending payments")
	}

	summary := analytics.PendingPayers(tenants, logs, now)
	return respondData(c, http.StatusOK, summary)
}

// GetTenantFinancialSummary totals one tenant's full payment history
func GetTenantFinancialSummary(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	if _, err := findTenant(userID, id); err != nil {
		log.Warn("Tenant not found for financial summary", zap.String("tenant_id", id))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var logs []model.RentLog
	result := database.GetDB().
		Where("user_id = ? AND tenant_id = ?", userID, id).
		Find(&logs)
	if result.Error != nil {
		log.Error("Failed to fetch rent logs for summary", zap.String("tenant_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to compute financial summary")
	}

	return respondData(c, http.StatusOK, analytics.ComputeTenantFinancialSummary(logs))
}
