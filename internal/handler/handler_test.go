package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scooter/internal/handler"
	"scooter/internal/repository/memory"
	"scooter/internal/service"
)

type testEnv struct {
	router  *gin.Engine
	tracker *service.OperationTracker
	logDir  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithExport(t, t.TempDir(), 0)
}

func newTestEnvWithExport(t *testing.T, logDir string, delay time.Duration) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scooterService := service.NewScooterService(memory.NewScooterRepository())
	passengerService := service.NewPassengerService(memory.NewPassengerRepository())
	tracker := service.NewOperationTracker(memory.NewOperationRepository(), zap.NewNop(), nil)
	logService := service.NewLogService(logDir, delay, zap.NewNop())

	scooters := handler.NewScooterHandler(scooterService, passengerService)
	passengers := handler.NewPassengerHandler(passengerService)
	logs := handler.NewLogHandler(tracker, logService, passengerService)

	router := gin.New()
	router.GET("/scooter/", scooters.Create)
	router.GET("/scooter/all", scooters.List)
	router.POST("/scooter/occupy/", scooters.Occupy)
	router.POST("/scooter/vacant/", scooters.Vacate)
	router.GET("/scooter/broken/", scooters.GetBroken)
	router.POST("/scooter/broken/", scooters.MarkBroken)
	router.POST("/passenger/", passengers.Register)
	router.GET("/log/", logs.StartExport)
	router.GET("/log/status", logs.Status)

	env := &testEnv{router: router, tracker: tracker, logDir: logDir}
	t.Cleanup(func() { env.wait(t) })
	return env
}

func (e *testEnv) wait(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.tracker.Wait(ctx); err != nil {
		t.Fatalf("background operations did not finish: %v", err)
	}
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postJSON(path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) postForm(path, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createScooter(t *testing.T) string {
	t.Helper()
	w := e.get("/scooter/")
	if w.Code != http.StatusCreated {
		t.Fatalf("create scooter: expected 201, got %d", w.Code)
	}
	var resp handler.ScooterResponse
	decode(t, w, &resp)
	return resp.ID
}

func (e *testEnv) registerPassenger(t *testing.T, name, surname string) string {
	t.Helper()
	w := e.postJSON("/passenger/", map[string]string{"name": name, "surname": surname})
	if w.Code != http.StatusCreated {
		t.Fatalf("register passenger: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.PassengerIDResponse
	decode(t, w, &resp)
	return resp.PassengerID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}
	var resp handler.ValidationErrorResponse
	decode(t, w, &resp)
	return resp.Errors
}

func assertFieldError(t *testing.T, errs map[string][]string, field, msg string) {
	t.Helper()
	for _, m := range errs[field] {
		if m == msg {
			return
		}
	}
	t.Errorf("expected %q error %q, got %v", field, msg, errs)
}
