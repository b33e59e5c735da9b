package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda/internal/httpresp"
	"github.com/BruksfildServices01/agenda/internal/models"
	"github.com/BruksfildServices01/agenda/internal/testutil"
	"github.com/BruksfildServices01/agenda/internal/validators"
)

func uintPtr(v uint) *uint { return &v }

func TestAuditLogs_FiltersAndPaginates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validators.Register())

	db := testutil.NewDB(t)
	day := testutil.At(2025, 6, 10, 12, 0)

	seed := []models.AuditLog{
		{Action: "client_created", Entity: "client", EntityID: uintPtr(1), CreatedAt: day},
		{Action: "appointment_created", Entity: "appointment", EntityID: uintPtr(7), CreatedAt: day},
		{Action: "appointment_confirmed", Entity: "appointment", EntityID: uintPtr(7), CreatedAt: day.Add(time.Hour)},
		{Action: "appointment_created", Entity: "appointment", EntityID: uintPtr(8), CreatedAt: day.AddDate(0, 0, 2)},
	}
	require.NoError(t, db.Create(&seed).Error)

	r := gin.New()
	r.GET("/audit-logs", NewAuditLogsHandler(db, testutil.Loc()).List)

	get := func(query string) (int, httpresp.PageResponse[models.AuditLog]) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/audit-logs"+query, nil))
		var out httpresp.PageResponse[models.AuditLog]
		_ = json.Unmarshal(w.Body.Bytes(), &out)
		return w.Code, out
	}

	code, out := get("?entity=appointment&entity_id=7")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), out.Total)
	assert.Equal(t, "appointment_confirmed", out.Data[0].Action, "newest first")

	_, out = get("?from=2025-06-10&to=2025-06-10")
	assert.Equal(t, int64(3), out.Total)

	_, out = get("?action=appointment_created&limit=1&page=2")
	assert.Equal(t, int64(2), out.Total)
	require.Len(t, out.Data, 1)
	assert.Equal(t, uint(7), *out.Data[0].EntityID)

	_, out = get("?limit=9999")
	assert.Equal(t, auditDefaultLimit, out.Limit)

	code, _ = get("?from=10-06-2025")
	assert.Equal(t, http.StatusBadRequest, code)
}
