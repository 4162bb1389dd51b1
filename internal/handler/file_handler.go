package handler

import (
	"net/http"
	"time"

	"rentman-service/internal/middleware"
	"rentman-service/internal/model"
	"rentman-service/pkg/database"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FileRequest carries a base64-encoded document payload
type FileRequest struct {
	Name string   `json:"name"`
	Type string   `json:"type"`
	Size *float64 `json:"size"`
	Data string   `json:"data"`
}

func (r *FileRequest) validate() string {
	switch {
	case r.Name == "":
		return "name is required"
	case r.Type == "":
		return "type is required"
	case r.Size == nil:
		return "size is required"
	case *r.Size < 0:
		return "size must be non-negative"
	case r.Data == "":
		return "data is required"
	}
	return ""
}

// UploadTenantFile attaches a document to a tenant
func UploadTenantFile(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	tenantID := c.Param("id")

	var req FileRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid file request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if msg := req.validate(); msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	if _, err := findTenant(userID, tenantID); err != nil {
		log.Warn("Tenant not found for file upload", zap.String("tenant_id", tenantID))
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	file := model.UploadedFile{
		UserID:   userID,
		Name:     req.Name,
		Type:     req.Type,
		Size:     *req.Size,
		Data:     req.Data,
		TenantID: &tenantID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&file); result.Error != nil {
		log.Error("Failed to store file", zap.String("tenant_id", tenantID), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to store file")
	}

	log.Info("Tenant file stored",
		zap.String("file_id", file.ID),
		zap.String("tenant_id", tenantID),
		zap.Float64("size", file.Size))
	return respondData(c, http.StatusCreated, file)
}

// ListTenantFiles returns the documents attached to a tenant
func ListTenantFiles(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	tenantID := c.Param("id")

	if _, err := findTenant(userID, tenantID); err != nil {
		return respondError(c, http.StatusNotFound, "tenant not found")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var files []model.UploadedFile
	result := database.GetDB().
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("uploaded_at DESC").
		Find(&files)
	if result.Error != nil {
		log.Error("Failed to list tenant files", zap.String("tenant_id", tenantID), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch files")
	}

	return respondData(c, http.StatusOK, files)
}

// UploadRentLogFile attaches a document to a rent log
func UploadRentLogFile(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	rentLogID := c.Param("id")

	var req FileRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid file request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if msg := req.validate(); msg != "" {
		return respondError(c, http.StatusBadRequest, msg)
	}

	if _, err := findRentLog(userID, rentLogID); err != nil {
		log.Warn("Rent log not found for file upload", zap.String("rent_log_id", rentLogID))
		return respondError(c, http.StatusNotFound, "rent log not found")
	}

	file := model.UploadedFile{
		UserID:    userID,
		Name:      req.Name,
		Type:      req.Type,
		Size:      *req.Size,
		Data:      req.Data,
		RentLogID: &rentLogID,
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&file); result.Error != nil {
		log.Error("Failed to store file", zap.String("rent_log_id", rentLogID), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to store file")
	}

	log.Info("Rent log file stored",
		zap.String("file_id", file.ID),
		zap.String("rent_log_id", rentLogID))
	return respondData(c, http.StatusCreated, file)
}

// ListRentLogFiles returns the documents attached to a rent log
func ListRentLogFiles(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	rentLogID := c.Param("id")

	if _, err := findRentLog(userID, rentLogID); err != nil {
		return respondError(c, http.StatusNotFound, "rent log not found")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var files []model.UploadedFile
	result := database.GetDB().
		Where("user_id = ? AND rent_log_id = ?", userID, rentLogID).
		Order("uploaded_at DESC").
		Find(&files)
	if result.Error != nil {
		log.Error("Failed to list rent log files", zap.String("rent_log_id", rentLogID), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch files")
	}

	return respondData(c, http.StatusOK, files)
}

// DeleteFile removes one uploaded file
func DeleteFile(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).Delete(&model.UploadedFile{})
	if result.Error != nil {
		log.Error("Failed to delete file", zap.String("file_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to delete file")
	}
	if result.RowsAffected == 0 {
		log.Warn("File not found for deletion", zap.String("file_id", id))
		return respondError(c, http.StatusNotFound, "file not found")
	}

	log.Info("File deleted", zap.String("file_id", id))
	return respondMessage(c, http.StatusOK, "file deleted successfully")
}
