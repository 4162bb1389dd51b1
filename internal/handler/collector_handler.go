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

// CollectorRequest defines the structure for collector create/update requests
type CollectorRequest struct {
	Name string `json:"name"`
}

// ListCollectors handles retrieving all rent collectors of the calling user
func ListCollectors(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	var collectors []model.RentCollector
	result := database.GetDB().
		Where("user_id = ?", userID).
		Order("name").
		Find(&collectors)
	if result.Error != nil {
		log.Error("Failed to list collectors", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to fetch collectors")
	}

	return respondData(c, http.StatusOK, collectors)
}

// CreateCollector handles creating a new rent collector
func CreateCollector(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	prometheus.RecordCollectorOperation("create")

	var req CollectorRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid collector request data", zap.Error(err))
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, "name is required")
	}

	collector := model.RentCollector{UserID: userID, Name: req.Name}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	if result := database.GetDB().Create(&collector); result.Error != nil {
		log.Error("Failed to create collector", zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to create collector")
	}

	log.Info("Collector created",
		zap.String("collector_id", collector.ID),
		zap.String("name", collector.Name))
	return respondData(c, http.StatusCreated, collector)
}

// UpdateCollector handles renaming a rent collector
func UpdateCollector(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordCollectorOperation("update")

	var req CollectorRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, http.StatusBadRequest, "invalid request data")
	}
	if req.Name == "" {
		return respondError(c, http.StatusBadRequest, "name is required")
	}

	var collector model.RentCollector
	if err := database.GetDB().Where("id = ? AND user_id = ?", id, userID).First(&collector).Error; err != nil {
		log.Warn("Collector not found for update", zap.String("collector_id", id))
		return respondError(c, http.StatusNotFound, "collector not found")
	}

	collector.Name = req.Name

	defer prometheus.TrackDBOperation("update")(time.Now())
	if result := database.GetDB().Save(&collector); result.Error != nil {
		log.Error("Failed to update collector", zap.String("collector_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to update collector")
	}

	log.Info("Collector updated", zap.String("collector_id", id))
	return respondData(c, http.StatusOK, collector)
}

// DeleteCollector handles deleting a rent collector. Existing rent logs
// keep the collector name, it is a free-text label on the log.
func DeleteCollector(c echo.Context) error {
	log := logger.FromContext(c)
	userID, _ := middleware.UserIDFromContext(c)
	id := c.Param("id")
	prometheus.RecordCollectorOperation("delete")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Where("id = ? AND user_id = ?", id, userID).Delete(&model.RentCollector{})
	if result.Error != nil {
		log.Error("Failed to delete collector", zap.String("collector_id", id), zap.Error(result.Error))
		return respondError(c, http.StatusInternalServerError, "failed to delete collector")
	}
	if result.RowsAffected == 0 {
		log.Warn("Collector not found for deletion", zap.String("collector_id", id))
		return respondError(c, http.StatusNotFound, "collector not found")
	}

	log.Info("Collector deleted", zap.String("collector_id", id))
	return respondMessage(c, http.StatusOK, "collector deleted successfully")
}
