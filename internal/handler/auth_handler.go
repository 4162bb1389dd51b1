package handler

import (
	"net/http"
	"time"

	"rentman-service/internal/model"
	"rentman-service/pkg/database"
	"rentman-service/pkg/jwtutil"
	"rentman-service/pkg/logger"
	"rentman-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Collector names seeded for every new account
var defaultCollectors = []string{"John Doe", "Jane Smith", "Mike Johnson", "Sarah Wilson"}

// AuthRequest carries registration and login credentials. Either email or
// phone number identifies the account.
type AuthRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// Register creates a new account with its default settings and collectors
func Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.IncrementRegister()

	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "invalid request")
	}

	if req.Password == "" {
		prometheus.RecordAuthError("missing_password")
		return respondError(c, http.StatusBadRequest, "password is required")
	}
	if len(req.Password) < 6 {
		prometheus.RecordAuthError("weak_password")
		return respondError(c, http.StatusBadRequest, "password must be at least 6 characters")
	}
	if req.Email == "" && req.PhoneNumber == "" {
		prometheus.RecordAuthError("missing_identifier")
		return respondError(c, http.StatusBadRequest, "either email or phone number is required")
	}

	db := database.GetDB()

	defer prometheus.TrackDBOperation("query")(time.Now())
	if req.Email != "" {
		var existing model.User
		if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
			log.Warn("Email already registered", zap.String("email", req.Email))
			prometheus.RecordAuthError("email_already_exists")
			return respondError(c, http.StatusBadRequest, "email already registered")
		}
	}
	if req.PhoneNumber != "" {
		var existing model.User
		if err := db.Where("phone_number = ?", req.PhoneNumber).First(&existing).Error; err == nil {
			log.Warn("Phone number already registered", zap.String("phone_number", req.PhoneNumber))
			prometheus.RecordAuthError("phone_already_exists")
			return respondError(c, http.StatusBadRequest, "phone number already registered")
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return respondError(c, http.StatusInternalServerError, "registration failed")
	}

	user := model.User{Password: string(hashedPassword)}
	if req.Email != "" {
		user.Email = &req.Email
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = &req.PhoneNumber
	}

	// The account, its settings row and the starter collectors are created
	// together or not at all
	defer prometheus.TrackDBOperation("insert")(time.Now())
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		settings := model.AppSettings{
			UserID:           user.ID,
			DefaultUnitPrice: model.DefaultUnitPrice,
		}
		if err := tx.Create(&settings).Error; err != nil {
			return err
		}
		for _, name := range defaultCollectors {
			collector := model.RentCollector{UserID: user.ID, Name: name}
			if err := tx.Create(&collector).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("Failed to create user", zap.Error(err))
		prometheus.RecordAuthError("user_creation_failed")
		return respondError(c, http.StatusInternalServerError, "registration failed")
	}

	token, err := jwtutil.GenerateToken(user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, http.StatusInternalServerError, "registration failed")
	}
	prometheus.IncreaseActiveSessions()

	log.Info("User registered", zap.String("user_id", user.ID))
	return respondData(c, http.StatusCreated, echo.Map{
		"user":  user,
		"token": token,
	})
}

// Login verifies credentials by email or phone number and issues a token
func Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.IncrementLogin()

	var req AuthRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return respondError(c, http.StatusBadRequest, "invalid request")
	}

	if req.Password == "" {
		prometheus.RecordAuthError("missing_password")
		return respondError(c, http.StatusBadRequest, "password is required")
	}
	if req.Email == "" && req.PhoneNumber == "" {
		prometheus.RecordAuthError("missing_identifier")
		return respondError(c, http.StatusBadRequest, "either email or phone number is required")
	}

	defer prometheus.TrackDBOperation("query")(time.Now())
	var user model.User
	query := database.GetDB()
	if req.Email != "" {
		query = query.Where("email = ?", req.Email)
	} else {
		query = query.Where("phone_number = ?", req.PhoneNumber)
	}
	if err := query.First(&user).Error; err != nil {
		log.Warn("User not found for login")
		prometheus.RecordAuthError("user_not_found")
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("user_id", user.ID))
		prometheus.RecordAuthError("invalid_password")
		return respondError(c, http.StatusUnauthorized, "invalid credentials")
	}

	token, err := jwtutil.GenerateToken(user.ID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return respondError(c, http.StatusInternalServerError, "login failed")
	}
	prometheus.IncreaseActiveSessions()

	log.Info("User logged in", zap.String("user_id", user.ID))
	return respondData(c, http.StatusOK, echo.Map{
		"user":  user,
		"token": token,
	})
}
