package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cjiajing/robinson-parking/internal/auth"
	"github.com/cjiajing/robinson-parking/internal/handlers"
	"github.com/cjiajing/robinson-parking/internal/models"
	"github.com/cjiajing/robinson-parking/internal/storage"
	"github.com/cjiajing/robinson-parking/internal/ws"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.QueueEntry{},
		&models.VerificationSample{},
		&models.ParkingRecord{},
		&models.IssueReport{},
		&models.MaintenanceWindow{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_queue_entries_waiting ON queue_entries (lift, owner_id) WHERE status = 'waiting'",
	).Error; err != nil {
		t.Fatalf("create index: %v", err)
	}
	storage.DB = db

	go ws.HubInstance.Run()

	r := gin.New()
	r.GET("/api/identity", handlers.NewIdentityHandler)
	r.GET("/api/maintenance", handlers.GetMaintenanceScheduleHandler)
	r.GET("/api/lifts/:lift/ws", ws.LiftWebSocketHandler)
	api := r.Group("/api", auth.DeviceMiddleware())
	{
		api.GET("/lifts/:lift/queue", handlers.GetQueueStatusHandler)
		api.POST("/lifts/:lift/queue/join", handlers.JoinQueueHandler)
		api.POST("/lifts/:lift/queue/pin", handlers.PinPositionHandler)
		api.POST("/lifts/:lift/queue/leave", handlers.LeaveQueueHandler)
		api.POST("/lifts/:lift/queue/complete", handlers.CompleteRetrievalHandler)
		api.POST("/lifts/:lift/verifications", handlers.ReportQueueLengthHandler)
		api.POST("/parking", handlers.CheckInHandler)
		api.GET("/parking", handlers.GetParkingHandler)
		api.DELETE("/parking", handlers.ClearParkingHandler)
		api.POST("/issues", handlers.ReportIssueHandler)
		api.GET("/issues", handlers.ListIssuesHandler)
	}

	return httptest.NewServer(r)
}

func doJSON(t *testing.T, method, url, device string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if device != "" {
		req.Header.Set("X-Device-ID", device)
	}
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	var decoded map[string]interface{}
	json.NewDecoder(res.Body).Decode(&decoded)
	return res, decoded
}

func TestQueueFlow(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	joinURL := ts.URL + "/api/lifts/A/queue/join"

	// Two residents join lift A.
	res, body := doJSON(t, "POST", joinURL, "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), body["queue_length"])

	res, body = doJSON(t, "POST", joinURL, "device-two", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(2), body["queue_length"])

	// Joining twice without leaving is rejected.
	res, body = doJSON(t, "POST", joinURL, "device-one", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "ALREADY_IN_QUEUE", body["code"])

	// The second resident claims the physical front of the line.
	res, body = doJSON(t, "POST", ts.URL+"/api/lifts/A/queue/pin", "device-two",
		map[string]interface{}{"position": 1})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(1), body["position"])

	// The first resident now sees themselves second.
	res, body = doJSON(t, "GET", ts.URL+"/api/lifts/A/queue", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(2), body["queue_length"])
	assert.Equal(t, true, body["in_queue"])
	assert.Equal(t, float64(2), body["position"])

	// The pin recorded a verification sample, so the status carries the
	// community estimate.
	assert.Equal(t, float64(2), body["verified_count"])
}

func TestQueueFlowValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// Device header is mandatory on resident endpoints.
	res, body := doJSON(t, "POST", ts.URL+"/api/lifts/A/queue/join", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "NO_DEVICE_ID", body["code"])

	// Unknown lift.
	res, body = doJSON(t, "POST", ts.URL+"/api/lifts/C/queue/join", "device-one", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "INVALID_LIFT", body["code"])

	// Leave is a no-op even when not queued.
	res, _ = doJSON(t, "POST", ts.URL+"/api/lifts/A/queue/leave", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestWebSocketRejectsUnknownLift(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// An unknown lift must be rejected before the upgrade, so no hub room is
	// ever created for it.
	res, body := doJSON(t, "GET", ts.URL+"/api/lifts/C/ws", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "INVALID_LIFT", body["code"])
}

func TestCompleteClearsParkingRecord(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	// Check in with a pallet; the level is derived (pallet 12 -> level 2).
	res, body := doJSON(t, "POST", ts.URL+"/api/parking", "device-one",
		map[string]interface{}{"lift": "A", "code": "1234", "pallet": 12})
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(2), body["level"])
	assert.Equal(t, "B", body["suggested_lift"]) // even pallet, alternating policy

	res, _ = doJSON(t, "POST", ts.URL+"/api/lifts/A/queue/join", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = doJSON(t, "POST", ts.URL+"/api/lifts/A/queue/complete", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	// Completing retrieval cleared the parking record.
	res, body = doJSON(t, "GET", ts.URL+"/api/parking", "device-one", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "NOT_PARKED", body["code"])
}

func TestParkingValidation(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res, body := doJSON(t, "POST", ts.URL+"/api/parking", "device-one",
		map[string]interface{}{"lift": "A", "code": "12x4"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "INVALID_CODE", body["code"])

	res, body = doJSON(t, "POST", ts.URL+"/api/parking", "device-one",
		map[string]interface{}{"lift": "A", "pallet": 99})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "INVALID_PALLET", body["code"])
}

func TestManualVerification(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res, _ := doJSON(t, "POST", ts.URL+"/api/lifts/B/verifications", "device-one",
		map[string]interface{}{"count": 3})
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res, body := doJSON(t, "GET", ts.URL+"/api/lifts/B/queue", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, float64(0), body["queue_length"])
	assert.Equal(t, float64(3), body["verified_count"])
}

func TestIdentityMinting(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res, body := doJSON(t, "GET", ts.URL+"/api/identity", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	deviceID, _ := body["device_id"].(string)
	assert.True(t, strings.HasPrefix(deviceID, "device-"))
}

func TestIssueFlow(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.Close()

	res, body := doJSON(t, "POST", ts.URL+"/api/issues", "device-one",
		map[string]interface{}{"category": "lift_stuck", "description": "Lift B stalled mid-cycle", "lift": "B"})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "open", body["status"])

	res, _ = doJSON(t, "GET", ts.URL+"/api/issues?status=open", "device-one", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
