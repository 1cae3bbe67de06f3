package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketmap/scanscheduler/pkg/scheduler"
)

func TestOverseerHandlerStatusReportsSizeAndMessage(t *testing.T) {
	disp := scheduler.NewDispatcher(&stubScheduler{}, time.Hour)
	handler := NewOverseerHandler(disp)

	req := httptest.NewRequest(http.MethodGet, "/overseer/status", http.NoBody)
	w := httptest.NewRecorder()
	handler.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.QueueSize)
	assert.Equal(t, "stub status", resp.Message)
}
