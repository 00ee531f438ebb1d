package v1

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pm-platform/patient-service/internal/config"
	"github.com/pm-platform/patient-service/internal/dto"
	"github.com/pm-platform/patient-service/internal/repository/memory"
	"github.com/pm-platform/patient-service/internal/service"
	"github.com/pm-platform/patient-service/pkg/metrics"
)

var testMetrics = metrics.NewCollector("patient_handler_test")

func newTestRouter(t *testing.T, healthy HealthChecker) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Environment = "test"
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.CORS.AllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}

	log := zap.NewNop()
	auditSvc := service.NewAuditService(memory.NewAuditRepository(), log, testMetrics)
	svc := service.NewPatientService(memory.NewPatientRepository(), auditSvc, log, testMetrics)

	if healthy == nil {
		healthy = func() error { return nil }
	}
	return NewRouter(cfg, NewPatientHandler(svc, log), testMetrics, log, healthy)
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createPatient(t *testing.T, router *gin.Engine, name, email string) dto.PatientResponse {
	t.Helper()
	w := doJSON(router, http.MethodPost, "/api/v1/patients", dto.PatientRequest{
		Name:           name,
		Email:          email,
		Address:        "123 Test St",
		DateOfBirth:    "1990-01-01",
		RegisteredDate: "2024-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.PatientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestCreatePatientEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	resp := createPatient(t, router, "Test Patient", "test@example.com")

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Test Patient", resp.Name)
	assert.Equal(t, "test@example.com", resp.Email)
}

func TestCreatePatientEndpoint_DuplicateEmail(t *testing.T) {
	router := newTestRouter(t, nil)
	createPatient(t, router, "Test Patient 1", "duplicate@example.com")

	w := doJSON(router, http.MethodPost, "/api/v1/patients", dto.PatientRequest{
		Name:           "Test Patient 2",
		Email:          "duplicate@example.com",
		Address:        "456 Test St",
		DateOfBirth:    "1991-01-01",
		RegisteredDate: "2024-01-02",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "EMAIL_TAKEN", resp.Code)
}

func TestCreatePatientEndpoint_ValidationFailure(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPost, "/api/v1/patients", dto.PatientRequest{
		Email: "not-an-email",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "registered_date")
}

func TestCreatePatientEndpoint_MalformedBody(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/patients", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	created := createPatient(t, router, "Test Patient", "testbyid@example.com")

	w := doJSON(router, http.MethodGet, "/api/v1/patients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PatientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, created, resp)
}

func TestGetPatientEndpoint_InvalidID(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/patients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/api/v1/patients/7b7adbd4-7ea5-4f7b-9246-51c0abdd6ad8", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdatePatientEndpoint_NotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodPut, "/api/v1/patients/7b7adbd4-7ea5-4f7b-9246-51c0abdd6ad8", dto.PatientRequest{
		Name:        "Test",
		Email:       "test@example.com",
		Address:     "123 Test St",
		DateOfBirth: "1990-01-01",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePatientEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	created := createPatient(t, router, "Test Patient", "testdelete@example.com")

	w := doJSON(router, http.MethodDelete, "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(router, http.MethodGet, "/api/v1/patients/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListPatientsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	for i := 0; i < 3; i++ {
		createPatient(t, router, fmt.Sprintf("Patient %d", i), fmt.Sprintf("patient%d@example.com", i))
	}

	w := doJSON(router, http.MethodGet, "/api/v1/patients", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.PatientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 3)
}

func TestListPatientsEndpoint_Paginated(t *testing.T) {
	router := newTestRouter(t, nil)
	for i := 0; i < 20; i++ {
		createPatient(t, router, fmt.Sprintf("Paginated %d", i), fmt.Sprintf("paginate%d@example.com", i))
	}

	w := doJSON(router, http.MethodGet, "/api/v1/patients?page=1&page_size=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.PagedPatientsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 5)
	assert.Equal(t, int64(20), resp.TotalElements)
	assert.Equal(t, 4, resp.TotalPages)
}

func TestSearchPatientsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)
	createPatient(t, router, "Search Test Patient", "searchtest@example.com")
	createPatient(t, router, "Someone Else", "else@example.com")

	w := doJSON(router, http.MethodGet, "/api/v1/patients/search?name=Search+Test", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []dto.PatientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Search Test Patient", resp[0].Name)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "up")
}

func TestHealthEndpoint_StoreDown(t *testing.T) {
	router := newTestRouter(t, func() error { return errors.New("connection refused") })

	w := doJSON(router, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRequestIDHeaderEchoed(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
