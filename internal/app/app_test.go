package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/yoga-studio-admin/pkg/config"
	"github.com/noah-isme/yoga-studio-admin/pkg/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:       "test",
		APIPrefix: "/api/v1",
		Locale:    "en-US",
		Database:  config.DatabaseConfig{Path: database.MemoryPath},
		Mirror:    config.MirrorConfig{Driver: config.MirrorDriverNone},
		JWT:       config.JWTConfig{Secret: "test-secret", Expiration: time.Hour},
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func do(t *testing.T, a *App, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, req)

	out := map[string]interface{}{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func dataID(t *testing.T, body map[string]interface{}) int {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "missing data in %v", body)
	return int(data["id"].(float64))
}

func TestStudioWorkflow(t *testing.T) {
	a := newTestApp(t, testConfig())

	w, body := do(t, a, http.MethodPost, "/api/v1/teachers", map[string]string{"name": "Ann", "email": "ann@studio.test"}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	teacherID := dataID(t, body)

	w, body = do(t, a, http.MethodPost, "/api/v1/courses", map[string]interface{}{
		"name": "Morning Flow", "teacher_id": teacherID, "day_of_week": "Monday", "time": "09:00",
		"duration_minutes": 60, "max_capacity": 12, "price": 15.5, "type": "Flow Yoga",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	courseID := dataID(t, body)
	coursePath := "/api/v1/courses/" + itoa(courseID)

	// 2025-01-06 is a Monday, 2025-01-07 a Tuesday.
	w, _ = do(t, a, http.MethodPost, coursePath+"/instances", map[string]interface{}{"date": "06/01/2025", "teacher_id": teacherID}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, body = do(t, a, http.MethodPost, coursePath+"/instances", map[string]interface{}{"date": "2025-01-07", "teacher_id": teacherID}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "SCHEDULE_MISMATCH", body["error"].(map[string]interface{})["code"])

	w, body = do(t, a, http.MethodGet, "/api/v1/courses/search?teacher_name=an&date=2025-01-06", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["meta"].(map[string]interface{})["count"])

	for _, query := range []string{"day_of_week=monday", "day_of_week=Funday", "date=not-a-date", "date=2024-13-45"} {
		w, body = do(t, a, http.MethodGet, "/api/v1/courses/search?"+query, nil, "")
		require.Equal(t, http.StatusOK, w.Code, query)
		assert.EqualValues(t, 0, body["meta"].(map[string]interface{})["count"], query)
	}

	w, body = do(t, a, http.MethodGet, "/api/v1/instances?date=06/01/2025", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["meta"].(map[string]interface{})["count"])

	w, _ = do(t, a, http.MethodGet, "/api/v1/exports/timetable?format=csv", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Morning Flow")

	w, _ = do(t, a, http.MethodDelete, coursePath, nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w, body = do(t, a, http.MethodGet, "/api/v1/instances?date=2025-01-06", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["meta"].(map[string]interface{})["count"])
}

func TestHealthAndSyncWithoutMirror(t *testing.T) {
	a := newTestApp(t, testConfig())

	w, body := do(t, a, http.MethodGet, "/ready", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, database.CurrentSchemaVersion, body["data"].(map[string]interface{})["schema_version"])

	w, _ = do(t, a, http.MethodPost, "/api/v1/sync", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w, _ = do(t, a, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `path="/ready"`)
}

func TestAuthProtectsAPI(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("namaste"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{Enabled: true, Username: "admin", PasswordHash: string(hash)}
	a := newTestApp(t, cfg)

	w, _ := do(t, a, http.MethodGet, "/api/v1/teachers", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, body := do(t, a, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "admin", "password": "namaste"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := body["data"].(map[string]interface{})["access_token"].(string)

	w, _ = do(t, a, http.MethodGet, "/api/v1/teachers", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, a, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminResetClearsData(t *testing.T) {
	a := newTestApp(t, testConfig())

	w, _ := do(t, a, http.MethodPost, "/api/v1/teachers", map[string]string{"name": "Bo"}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = do(t, a, http.MethodPost, "/api/v1/admin/reset", nil, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w, body := do(t, a, http.MethodGet, "/api/v1/teachers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["meta"].(map[string]interface{})["count"])
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
