package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"rentman-service/internal/model"
	"rentman-service/pkg/database"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database and installs it as the
// handler-visible instance
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Foreign keys on, same as the production DSN
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	database.SetDB(db)
	return db
}

// newRequest builds an echo context around a JSON request body
func newRequest(t *testing.T, method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e := echo.New()
	return e.NewContext(req, rec), rec
}

// authedRequest builds a context with the given user already authenticated
func authedRequest(t *testing.T, userID, method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	c, rec := newRequest(t, method, path, body)
	c.Set("user_id", userID)
	return c, rec
}

// envelope mirrors the JSON response wrapper all endpoints use
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	env := decodeEnvelope(t, rec)
	require.True(t, env.Success, "expected success response, got: %s", rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

// seedUser inserts an account directly into the store
func seedUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{Email: &email, Password: "not-a-real-hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedTenant inserts a tenant owned by the given user
func seedTenant(t *testing.T, db *gorm.DB, userID, name string) *model.Tenant {
	t.Helper()

	tenant := &model.Tenant{
		UserID:            userID,
		Name:              name,
		PropertyName:      name + " flat",
		MonthlyRent:       15000,
		SecurityDeposit:   30000,
		StartDate:         "2024-01-01",
		StartMeterReading: "1250",
		PropertyType:      model.PropertyTypeResidential,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// seedRentLog inserts a rent log for the given tenant
func seedRentLog(t *testing.T, db *gorm.DB, userID string, tenant *model.Tenant, logDate string) *model.RentLog {
	t.Helper()

	rentLog := &model.RentLog{
		UserID:               userID,
		TenantID:             tenant.ID,
		TenantName:           tenant.Name,
		Date:                 logDate,
		RentPaid:             15000,
		PreviousMeterReading: 1250,
		CurrentMeterReading:  1380,
		Units:                130,
		UnitPrice:            8,
		MeterBill:            1040,
		Total:                16040,
		Collector:            "John Doe",
		PaymentMode:          model.PaymentModeCash,
	}
	require.NoError(t, db.Create(rentLog).Error)
	return rentLog
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, rec.Code, "unexpected status, body: %s", rec.Body.String())
}
