package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/Nwoyi/staffing-api/internal/api/http"
	"github.com/Nwoyi/staffing-api/internal/config"
	"github.com/Nwoyi/staffing-api/internal/domain"
	"github.com/Nwoyi/staffing-api/internal/events"
	"github.com/Nwoyi/staffing-api/internal/observability"
	"github.com/Nwoyi/staffing-api/internal/repository"
	"github.com/Nwoyi/staffing-api/internal/service"
)

type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

type listBody struct {
	Data       []domain.StaffMember `json:"data"`
	Pagination struct {
		Total      int `json:"total"`
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
	} `json:"pagination"`
}

type pingableStore struct {
	repository.StaffRepository
	err error
}

func (p pingableStore) Ping(context.Context) error { return p.err }

func newTestApp(t *testing.T, env string, store repository.StaffRepository) *fiber.App {
	t.Helper()
	if store == nil {
		store = repository.NewMemoryStaffRepository()
	}
	return apihttp.NewServer(apihttp.ServerDeps{
		App:          config.AppConfig{Name: "staffing-api", Env: env, Version: "test"},
		Metrics:      observability.NewMetrics(),
		StaffService: service.NewStaffService(store, events.NewInMemoryDispatcher()),
		Store:        store,
	})
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestStaffLifecycle(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/staff", map[string]any{
		"firstName":  "John",
		"lastName":   "Doe",
		"email":      "john.doe@example.com",
		"position":   "Developer",
		"department": "Engineering",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[domain.StaffMember](t, raw)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StaffStatusActive, created.Status)
	assert.Equal(t, "Engineering", *created.Department)
	assert.False(t, created.HireDate.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	resp, raw = doJSON(t, app, http.MethodGet, "/staff?page=1&limit=10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[listBody](t, raw)
	require.Len(t, list.Data, 1)
	assert.Equal(t, 1, list.Pagination.Total)
	assert.Equal(t, 10, list.Pagination.Limit)
	assert.Equal(t, 1, list.Pagination.TotalPages)

	resp, raw = doJSON(t, app, http.MethodGet, "/staff/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Email, decode[domain.StaffMember](t, raw).Email)

	resp, raw = doJSON(t, app, http.MethodPut, "/staff/"+created.ID, map[string]any{
		"position": "Senior Developer",
		"status":   "on_leave",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	updated := decode[domain.StaffMember](t, raw)
	assert.Equal(t, "Senior Developer", updated.Position)
	assert.Equal(t, domain.StaffStatusOnLeave, updated.Status)
	assert.Equal(t, "John", updated.FirstName)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))

	resp, raw = doJSON(t, app, http.MethodDelete, "/staff/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, raw)

	resp, raw = doJSON(t, app, http.MethodGet, "/staff/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode[errorBody](t, raw)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Staff member not found", body.Message)
}

func TestListEmptyUsesDefaults(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodGet, "/staff", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"data":[],"pagination":{"total":0,"page":1,"limit":20,"totalPages":0}}`, string(raw))
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t, "production", nil)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		field  string
	}{
		{"create missing email", http.MethodPost, "/staff", map[string]any{"firstName": "A", "lastName": "B", "position": "C"}, "email"},
		{"create bad email", http.MethodPost, "/staff", map[string]any{"firstName": "A", "lastName": "B", "email": "x", "position": "C"}, "email"},
		{"get bad id", http.MethodGet, "/staff/123", nil, "id"},
		{"update bad status", http.MethodPut, "/staff/0b8f3c1e-8f43-4c4a-9d7e-3f9a3c2f1d11", map[string]any{"status": "retired"}, "status"},
		{"delete bad id", http.MethodDelete, "/staff/not-a-uuid", nil, "id"},
		{"list limit too large", http.MethodGet, "/staff?limit=101", nil, "limit"},
		{"list page zero", http.MethodGet, "/staff?page=0", nil, "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, raw := doJSON(t, app, tt.method, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))
			body := decode[errorBody](t, raw)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
			assert.Equal(t, "Invalid request data", body.Message)

			var details []struct {
				Field string `json:"field"`
			}
			require.NoError(t, json.Unmarshal(body.Details, &details))
			require.Len(t, details, 1)
			assert.Equal(t, tt.field, details[0].Field)
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		resp, raw := doJSON(t, app, http.MethodPost, "/staff", `{"firstName":`)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, raw).Code)
	})
}

func TestDuplicateEmail(t *testing.T) {
	app := newTestApp(t, "production", nil)
	payload := map[string]any{"firstName": "A", "lastName": "B", "email": "same@example.com", "position": "C"}

	resp, _ := doJSON(t, app, http.MethodPost, "/staff", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/staff", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorBody](t, raw)
	assert.Equal(t, "DUPLICATE_EMAIL", body.Code)
	assert.Equal(t, "Email already exists", body.Message)
}

func TestUpdateAndDeleteMissingRecord(t *testing.T) {
	app := newTestApp(t, "production", nil)
	target := "/staff/0b8f3c1e-8f43-4c4a-9d7e-3f9a3c2f1d11"

	resp, raw := doJSON(t, app, http.MethodPut, target, map[string]any{"position": "X"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, raw).Code)

	resp, _ = doJSON(t, app, http.MethodDelete, target, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodGet, "/nope", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[errorBody](t, raw).Code)
}

func TestPanicBecomesInternalError(t *testing.T) {
	for _, tt := range []struct {
		env         string
		wantDetails bool
	}{
		{"production", false},
		{"development", true},
	} {
		t.Run(tt.env, func(t *testing.T) {
			app := newTestApp(t, tt.env, nil)
			app.Get("/boom", func(*fiber.Ctx) error { panic("kaboom") })

			resp, raw := doJSON(t, app, http.MethodGet, "/boom", nil)
			require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
			body := decode[errorBody](t, raw)
			assert.Equal(t, "INTERNAL_ERROR", body.Code)
			assert.Equal(t, "internal server error", body.Message)
			if tt.wantDetails {
				assert.Contains(t, string(body.Details), "kaboom")
			} else {
				assert.Empty(t, body.Details)
			}
		})
	}
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","message":"Staffing API is running"}`, string(raw))

	resp, _ = doJSON(t, app, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw = doJSON(t, app, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestReadyReportsStoreFailure(t *testing.T) {
	store := pingableStore{
		StaffRepository: repository.NewMemoryStaffRepository(),
		err:             errors.New("connection refused"),
	}
	app := newTestApp(t, "production", store)

	resp, raw := doJSON(t, app, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", decode[errorBody](t, raw).Code)
}

func TestMixedCaseKeysCannotBypassValidation(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/staff", `{"firstName":"John","lastName":"Doe",`+
		`"email":"john@example.com","position":"Developer","EMAIL":"not-an-email","FirstName":"","STATUS":"retired"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	created := decode[domain.StaffMember](t, raw)
	assert.Equal(t, "John", created.FirstName)
	assert.Equal(t, "john@example.com", created.Email)
	assert.Equal(t, domain.StaffStatusActive, created.Status)

	resp, raw = doJSON(t, app, http.MethodPost, "/staff", `{"FirstName":"Jane","LastName":"Roe",`+
		`"Email":"jane@example.com","Position":"Developer"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", decode[errorBody](t, raw).Code)

	resp, raw = doJSON(t, app, http.MethodPut, "/staff/"+created.ID, `{"Status":"retired","Position":"","EMAIL":"x"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	updated := decode[domain.StaffMember](t, raw)
	assert.Equal(t, domain.StaffStatusActive, updated.Status)
	assert.Equal(t, "Developer", updated.Position)
	assert.Equal(t, "john@example.com", updated.Email)

	resp, raw = doJSON(t, app, http.MethodGet, "/staff/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.Email, decode[domain.StaffMember](t, raw).Email)
}

func TestUpdateStatusStaysWithinAllowedValues(t *testing.T) {
	app := newTestApp(t, "production", nil)

	resp, raw := doJSON(t, app, http.MethodPost, "/staff", map[string]any{
		"firstName": "John", "lastName": "Doe", "email": "john@example.com", "position": "Developer",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[domain.StaffMember](t, raw).ID

	allowed := map[domain.StaffStatus]bool{}
	for _, s := range domain.StaffStatuses {
		allowed[s] = true
	}

	bodies := []string{
		`{"status":"retired"}`,
		`{"status":"Active"}`,
		`{"status":""}`,
		`{"status":1}`,
		`{"Status":"retired"}`,
		`{"status":"inactive","STATUS":"retired"}`,
		`{"STATUS":"retired","status":"on_leave"}`,
		`{"status":"active"}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			resp, _ := doJSON(t, app, http.MethodPut, "/staff/"+id, body)
			assert.Contains(t, []int{http.StatusOK, http.StatusBadRequest}, resp.StatusCode)

			_, raw := doJSON(t, app, http.MethodGet, "/staff/"+id, nil)
			status := decode[domain.StaffMember](t, raw).Status
			assert.True(t, allowed[status], "stored status %q", status)
		})
	}

	resp, _ = doJSON(t, app, http.MethodPut, "/staff/"+id, `{"status":"retired"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListPageBeyondRangeIsEmpty(t *testing.T) {
	app := newTestApp(t, "production", nil)
	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		resp, _ := doJSON(t, app, http.MethodPost, "/staff", map[string]any{
			"firstName": "A", "lastName": "B", "email": email, "position": "C",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	for _, target := range []string{
		"/staff?page=2&limit=4",
		"/staff?page=4611686018427387905&limit=4",
		"/staff?page=9223372036854775807&limit=100",
	} {
		t.Run(target, func(t *testing.T) {
			resp, raw := doJSON(t, app, http.MethodGet, target, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
			list := decode[listBody](t, raw)
			assert.Empty(t, list.Data)
			assert.Equal(t, 3, list.Pagination.Total)
			assert.Equal(t, 1, list.Pagination.TotalPages)
		})
	}
}
