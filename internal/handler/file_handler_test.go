package handler

import (
	"net/http"
	"testing"

	"rentman-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name": name,
		"type": "application/pdf",
		"size": 2048,
		"data": "JVBERi0xLjQKJcOkw7zDtsOf",
	}
}

func TestUploadAndListTenantFiles(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")
	tenant := seedTenant(t, db, user.ID, "Asha Verma")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/tenants/:id/files", fileBody("lease.pdf"))
	c.SetParamNames("id")
	c.SetParamValues(tenant.ID)
	require.NoError(t, UploadTenantFile(c))
	requireStatus(t, rec, http.StatusCreated)

	var uploaded model.UploadedFile
	decodeData(t, rec, &uploaded)
	assert.NotEmpty(t, uploaded.ID)
	assert.Equal(t, "lease.pdf", uploaded.Name)
	require.NotNil(t, uploaded.TenantID)
	assert.Equal(t, tenant.ID, *uploaded.TenantID)

	c, rec = authedRequest(t, user.ID, http.MethodGet, "/api/tenants/:id/files", nil)
	c.SetParamNames("id")
	c.SetParamValues(tenant.ID)
	require.NoError(t, ListTenantFiles(c))
	requireStatus(t, rec, http.StatusOK)

	var files []model.UploadedFile
	decodeData(t, rec, &files)
	require.Len(t, files, 1)
	assert.Equal(t, uploaded.ID, files[0].ID)
}

func TestUploadTenantFileUnknownTenant(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/tenants/:id/files", fileBody("lease.pdf"))
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, UploadTenantFile(c))
	requireStatus(t, rec, http.StatusNotFound)
}

func TestUploadTenantFileValidation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")
	tenant := seedTenant(t, db, user.ID, "Asha Verma")

	body := fileBody("lease.pdf")
	delete(body, "data")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/tenants/:id/files", body)
	c.SetParamNames("id")
	c.SetParamValues(tenant.ID)
	require.NoError(t, UploadTenantFile(c))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestUploadAndListRentLogFiles(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")
	tenant := seedTenant(t, db, user.ID, "Asha Verma")
	rentLog := seedRentLog(t, db, user.ID, tenant, "2025-02-01")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/rent-logs/:id/files", fileBody("receipt.pdf"))
	c.SetParamNames("id")
	c.SetParamValues(rentLog.ID)
	require.NoError(t, UploadRentLogFile(c))
	requireStatus(t, rec, http.StatusCreated)

	var uploaded model.UploadedFile
	decodeData(t, rec, &uploaded)
	require.NotNil(t, uploaded.RentLogID)
	assert.Equal(t, rentLog.ID, *uploaded.RentLogID)

	c, rec = authedRequest(t, user.ID, http.MethodGet, "/api/rent-logs/:id/files", nil)
	c.SetParamNames("id")
	c.SetParamValues(rentLog.ID)
	require.NoError(t, ListRentLogFiles(c))
	requireStatus(t, rec, http.StatusOK)

	var files []model.UploadedFile
	decodeData(t, rec, &files)
	require.Len(t, files, 1)
}

func TestUploadRentLogFileUnknownLog(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/rent-logs/:id/files", fileBody("receipt.pdf"))
	c.SetParamNames("id")
	c.SetParamValues("missing")
	require.NoError(t, UploadRentLogFile(c))
	requireStatus(t, rec, http.StatusNotFound)
}

func TestDeleteFile(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")
	tenant := seedTenant(t, db, user.ID, "Asha Verma")

	file := model.UploadedFile{
		UserID:   user.ID,
		Name:     "lease.pdf",
		Type:     "application/pdf",
		Size:     2048,
		Data:     "JVBERi0xLjQK",
		TenantID: &tenant.ID,
	}
	require.NoError(t, db.Create(&file).Error)

	c, rec := authedRequest(t, user.ID, http.MethodDelete, "/api/files/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(file.ID)
	require.NoError(t, DeleteFile(c))
	requireStatus(t, rec, http.StatusOK)

	var count int64
	require.NoError(t, db.Model(&model.UploadedFile{}).Where("id = ?", file.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteFileScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	tenant := seedTenant(t, db, owner.ID, "Asha Verma")

	file := model.UploadedFile{
		UserID:   owner.ID,
		Name:     "lease.pdf",
		Type:     "application/pdf",
		Size:     2048,
		Data:     "JVBERi0xLjQK",
		TenantID: &tenant.ID,
	}
	require.NoError(t, db.Create(&file).Error)

	c, rec := authedRequest(t, other.ID, http.MethodDelete, "/api/files/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(file.ID)
	require.NoError(t, DeleteFile(c))
	requireStatus(t, rec, http.StatusNotFound)
}
