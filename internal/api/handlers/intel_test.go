package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scamtrap-lab/internal/domain/models"
	"scamtrap-lab/pkg/logger"
)

type fixedRepo struct {
	recordingRepo
	listed []models.IntelRecord
}

func (r *fixedRepo) ListRecent(_ context.Context, limit int) ([]models.IntelRecord, error) {
	if limit < len(r.listed) {
		return r.listed[:limit], nil
	}
	return r.listed, nil
}

func TestIntelListReturnsRecords(t *testing.T) {
	repo := &fixedRepo{listed: []models.IntelRecord{
		{ID: 2, ScamType: "DigitalArrest", IFSC: "SBIN0001234", Timestamp: time.Now().UTC()},
		{ID: 1, ScamType: "Suspicious", Timestamp: time.Now().UTC()},
	}}
	h := NewIntelHandler(repo, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/api/intel", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Status  string               `json:"status"`
		Count   int                  `json:"count"`
		Records []models.IntelRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "DigitalArrest", resp.Records[0].ScamType)
}

func TestIntelListLimitParam(t *testing.T) {
	repo := &fixedRepo{listed: []models.IntelRecord{{ID: 3}, {ID: 2}, {ID: 1}}}
	h := NewIntelHandler(repo, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/api/intel?limit=2", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
}

func TestIntelListWithoutDatabase(t *testing.T) {
	h := NewIntelHandler(nil, logger.NewDefault())

	req := httptest.NewRequest(http.MethodGet, "/api/intel", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "PERSISTENCE_UNAVAILABLE")
}
