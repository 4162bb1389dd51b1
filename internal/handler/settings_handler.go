package handler

import (
	"errors"
	"net/http"
	"time"

	"rentman-service/internal/middleware"
	"rentman-service/internal/model"
	"rentman-service/pkg/database"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsRequest defines the structure for settings update requests
type SettingsRequest struct {
	DefaultUnitPrice *float64 `json:"defaultUnitPrice"`
}

// GetSettings returns the caller's settings, creating the default row if
// the account predates the settings table
func GetSettings(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var settings model.AppSettings
	err := database.GetDB().Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.AppSettings{
			UserID:           userID,
			DefaultUnitPrice: model.DefaultUnitPrice,
		}
		if result := database.GetDB().Create(&settings); result.Error != nil {
			log.Error("Failed to create default settings", zap.Error(result.Error))
			return respondError(c, http.StatusInternalServerError, "failed to fetch settings")
		}
	} else if err != nil {
		log.Error("Failed to fetch settings", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to fetch settings")
	}

	return respondData(c, http.StatusOK, settings)
}

// UpdateSettings changes the default electricity unit price
func UpdateSettings(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	var req SettingsRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid settings request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if req.DefaultUnitPrice == nil {
		return respondError(c, http.StatusBadRequest, "defaultUnitPrice is required")
	}
	if *req.DefaultUnitPrice < 0 {
		return respondError(c, http.StatusBadRequest, "defaultUnitPrice must be non-negative")
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	var settings model.AppSettings
	err := database.GetDB().Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.AppSettings{UserID: userID, DefaultUnitPrice: *req.DefaultUnitPrice}
		if result := database.GetDB().Create(&settings); result.Error != nil {
			log.Error("Failed to create settings", zap.Error(result.Error))
			return respondError(c, http.StatusInternalServerError, "failed to update settings")
		}
		return respondData(c, http.StatusOK, settings)
	} else if err != nil {
		log.Error("Failed to fetch settings for update", zap.Error(err))
		return respondError(c, http.StatusInternalServerError, "failed to update settings")
	}

	settings.DefaultUnitPrice = *req.DefaultUnitPrice
	if result := database.GetDB().Save(&settings); result.Error != nil {
		log.Error("Failed to update settings", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to update settings")
	}

	log.Info("Settings updated",
		zap.String("user_id", userID),
		zap.Float64("default_unit_price", settings.DefaultUnitPrice))
	return respondData(c, http.StatusOK, settings)
}
