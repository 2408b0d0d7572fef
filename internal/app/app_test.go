package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/poncheo/poncheo-backend-go/internal/config"
	"github.com/poncheo/poncheo-backend-go/internal/domain/employee"
	"github.com/poncheo/poncheo-backend-go/internal/pkg/clock"
	"github.com/poncheo/poncheo-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type harness struct {
	t       *testing.T
	app     *App
	clock   *clock.Fake
	handler http.Handler
	staff   map[string]employee.Employee // by code
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("cron-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		Database: config.DatabaseConfig{Driver: config.DriverMemory, MaxConns: 10},
		JWT:      config.JWTConfig{Secret: "test-secret", AccessExpiration: time.Hour},
		App:      config.AppConfig{Env: "test", LogLevel: "error", Version: "test"},
		AutoClose: config.AutoCloseConfig{
			Schedule:       "15m",
			Threshold:      14 * time.Hour,
			CronSecretHash: string(hash),
		},
		Payroll:  config.PayrollConfig{Concurrency: 2},
		Calendar: config.CalendarConfig{RestDay: time.Sunday},
	}
}

func newHarness(t *testing.T, now string) *harness {
	t.Helper()
	at, err := time.Parse(time.RFC3339, now)
	require.NoError(t, err)

	clk := clock.NewFake(at)
	a := NewWithStore(testConfig(t), clk, memory.NewStore())
	_, err = a.Seed(context.Background(), at.Year())
	require.NoError(t, err)

	staff, err := a.Repos.Employees.ListActive(context.Background(), nil)
	require.NoError(t, err)
	byCode := make(map[string]employee.Employee, len(staff))
	for _, e := range staff {
		byCode[e.EmployeeCode] = e
	}

	return &harness{t: t, app: a, clock: clk, handler: a.Router(), staff: byCode}
}

func (h *harness) token(code string) string {
	h.t.Helper()
	emp, ok := h.staff[code]
	require.True(h.t, ok, "unknown employee %s", code)
	token, _, err := h.app.JWT.GenerateAccessToken(emp.ID, emp.Role)
	require.NoError(h.t, err)
	return token
}

func (h *harness) do(method, path, code string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if code != "" {
		req.Header.Set("Authorization", "Bearer "+h.token(code))
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestSeed_IsIdempotent(t *testing.T) {
	h := newHarness(t, "2026-02-16T07:00:00Z")

	report, err := h.app.Seed(context.Background(), 2026)
	require.NoError(t, err)
	assert.Zero(t, report.Employees)
	assert.Zero(t, report.Holidays.Created)

	staff, err := h.app.Repos.Employees.ListActive(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, staff, len(h.staff))
}

func TestRouter_Health(t *testing.T) {
	h := newHarness(t, "2026-02-16T07:00:00Z")

	rec := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequiresToken(t *testing.T) {
	h := newHarness(t, "2026-02-16T07:00:00Z")

	rec := h.do(http.MethodPost, "/api/v1/punches/clock-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsMalformedIDs(t *testing.T) {
	h := newHarness(t, "2026-02-16T07:00:00Z")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/punches/not-a-uuid"},
		{http.MethodGet, "/api/v1/corrections/123"},
		{http.MethodPost, "/api/v1/corrections/123/approve"},
		{http.MethodGet, "/api/v1/payroll/123e4567-e89b-12d3-a456-426614174000"},
		{http.MethodPut, "/api/v1/payroll/abc/finalize"},
	}
	for _, c := range cases {
		rec := h.do(c.method, c.path, "EMP-001", nil)
		require.Equal(t, http.StatusBadRequest, rec.Code, "%s %s", c.method, c.path)
		env := decode(t, rec, nil)
		require.NotNil(t, env.Error)
		assert.Equal(t, "BAD_REQUEST", env.Error.Code)
		assert.Contains(t, env.Error.Details, "id")
	}

	rec := h.do(http.MethodGet, "/api/v1/punches/0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", "EMP-001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_PunchDayThroughPayroll(t *testing.T) {
	h := newHarness(t, "2026-02-16T08:05:00Z")

	var opened struct {
		ID               string `json:"id"`
		Status           string `json:"status"`
		TardinessMinutes int    `json:"tardiness_minutes"`
	}
	rec := h.do(http.MethodPost, "/api/v1/punches/clock-in", "EMP-002", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &opened)
	assert.Equal(t, "OPEN", opened.Status)
	assert.Zero(t, opened.TardinessMinutes)

	rec = h.do(http.MethodPost, "/api/v1/punches/clock-in", "EMP-002", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "PUNCH_ALREADY_OPEN", decode(t, rec, nil).Error.Code)

	h.clock.Set(mustTime(t, "2026-02-16T16:00:00Z"))
	rec = h.do(http.MethodPost, "/api/v1/punches/clock-out", "EMP-002", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Another employee cannot read the punch.
	rec = h.do(http.MethodGet, "/api/v1/punches/"+opened.ID, "EMP-003", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var days []struct {
		Date               string `json:"date"`
		TotalWorkedMinutes int    `json:"total_worked_minutes"`
	}
	rec = h.do(http.MethodGet, "/api/v1/daily-timesheets?start_date=2026-02-16&end_date=2026-02-16", "EMP-002", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &days)
	require.Len(t, days, 1)
	assert.Equal(t, 415, days[0].TotalWorkedMinutes)

	// Employees cannot run payroll.
	generate := map[string]any{"period_start": "2026-02-16", "period_end": "2026-02-22", "period_type": "WEEKLY"}
	rec = h.do(http.MethodPost, "/api/v1/payroll/generate", "EMP-002", generate)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var summaries []struct {
		ID                 string `json:"id"`
		EmployeeCode       string `json:"employee_code"`
		TotalWorkedMinutes int    `json:"total_worked_minutes"`
		Status             string `json:"status"`
	}
	generate["employee_ids"] = []string{h.staff["EMP-002"].ID}
	rec = h.do(http.MethodPost, "/api/v1/payroll/generate", "EMP-001", generate)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, 415, summaries[0].TotalWorkedMinutes)
	assert.Equal(t, "DRAFT", summaries[0].Status)

	rec = h.do(http.MethodPut, "/api/v1/payroll/"+summaries[0].ID+"/finalize", "EMP-001", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = h.do(http.MethodGet, "/api/v1/payroll/export/csv?period_start=2026-02-16&period_end=2026-02-22", "EMP-001", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll_2026-02-16_2026-02-22.csv")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "employeeCode,"))
	assert.Contains(t, lines[1], "FINALIZED")
}

func TestRouter_CorrectionReview(t *testing.T) {
	h := newHarness(t, "2026-02-16T08:30:00Z")

	rec := h.do(http.MethodPost, "/api/v1/punches/clock-in", "EMP-003", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p struct {
		ID string `json:"id"`
	}
	decode(t, rec, &p)

	h.clock.Set(mustTime(t, "2026-02-16T16:00:00Z"))
	rec = h.do(http.MethodPost, "/api/v1/punches/clock-out", "EMP-003", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var c struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	rec = h.do(http.MethodPost, "/api/v1/corrections", "EMP-003", map[string]any{
		"punch_id":           p.ID,
		"corrected_clock_in": "2026-02-16T08:00:00Z",
		"reason":             "Badge reader was down at the entrance",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decode(t, rec, &c)
	assert.Equal(t, "PENDING", c.Status)

	rec = h.do(http.MethodPost, "/api/v1/corrections/"+c.ID+"/approve", "EMP-003", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(http.MethodPost, "/api/v1/corrections/"+c.ID+"/approve", "EMP-001", map[string]string{"comments": "ok"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &c)
	assert.Equal(t, "APPROVED", c.Status)

	rec = h.do(http.MethodPost, "/api/v1/corrections/"+c.ID+"/reject", "EMP-001", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CORRECTION_ALREADY_REVIEWED", decode(t, rec, nil).Error.Code)
}

func TestRouter_AutoCloseJob(t *testing.T) {
	h := newHarness(t, "2026-02-16T08:00:00Z")

	rec := h.do(http.MethodPost, "/api/v1/punches/clock-in", "EMP-002", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	h.clock.Set(mustTime(t, "2026-02-17T00:00:00Z"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/auto-close", nil)
	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/jobs/auto-close", nil)
	req.Header.Set("X-Cron-Secret", "cron-secret")
	rec = httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report struct {
		Closed int `json:"closed"`
	}
	decode(t, rec, &report)
	assert.Equal(t, 1, report.Closed)
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return at
}
