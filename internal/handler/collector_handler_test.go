package handler

import (
	"net/http"
	"testing"

	"rentman-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorCRUD(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/rent-collectors", map[string]string{
		"name": "Ravi",
	})
	require.NoError(t, CreateCollector(c))
	requireStatus(t, rec, http.StatusCreated)

	var created model.RentCollector
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Ravi", created.Name)

	c, rec = authedRequest(t, user.ID, http.MethodPut, "/api/rent-collectors/"+created.ID, map[string]string{
		"name": "Ravi Shankar",
	})
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, UpdateCollector(c))
	requireStatus(t, rec, http.StatusOK)

	var updated model.RentCollector
	decodeData(t, rec, &updated)
	assert.Equal(t, "Ravi Shankar", updated.Name)

	c, rec = authedRequest(t, user.ID, http.MethodGet, "/api/rent-collectors", nil)
	require.NoError(t, ListCollectors(c))
	var collectors []model.RentCollector
	decodeData(t, rec, &collectors)
	require.Len(t, collectors, 1)

	c, rec = authedRequest(t, user.ID, http.MethodDelete, "/api/rent-collectors/"+created.ID, nil)
	c.SetParamNames("id")
	c.SetParamValues(created.ID)
	require.NoError(t, DeleteCollector(c))
	requireStatus(t, rec, http.StatusOK)

	c, rec = authedRequest(t, user.ID, http.MethodGet, "/api/rent-collectors", nil)
	require.NoError(t, ListCollectors(c))
	decodeData(t, rec, &collectors)
	assert.Empty(t, collectors)
}

func TestCreateCollectorRequiresName(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "landlord@example.com")

	c, rec := authedRequest(t, user.ID, http.MethodPost, "/api/rent-collectors", map[string]string{})
	require.NoError(t, CreateCollector(c))
	requireStatus(t, rec, http.StatusBadRequest)
}

func TestCollectorsScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	require.NoError(t, db.Create(&model.RentCollector{UserID: owner.ID, Name: "Ravi"}).Error)

	c, rec := authedRequest(t, other.ID, http.MethodGet, "/api/rent-collectors", nil)
	require.NoError(t, ListCollectors(c))

	var collectors []model.RentCollector
	decodeData(t, rec, &collectors)
	assert.Empty(t, collectors)
}
