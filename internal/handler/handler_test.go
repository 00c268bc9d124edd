package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/propmgmt/internal/assets"
	"github.com/segyhp/propmgmt/internal/auth"
	"github.com/segyhp/propmgmt/internal/repository/memory"
	"github.com/segyhp/propmgmt/internal/service"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type testServer struct {
	router http.Handler
}

type serverOption func(*serverConfig)

type serverConfig struct {
	basePath     string
	assetsDir    string
	authenticate func(http.Handler) http.Handler
	auth         *AuthHandler
}

func withBasePath(path string) serverOption {
	return func(c *serverConfig) { c.basePath = path }
}

func withAuthenticate(mw func(http.Handler) http.Handler) serverOption {
	return func(c *serverConfig) { c.authenticate = mw }
}

// newTestServer serves the sample portfolio as of 2023-05-10
func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	cfg := serverConfig{assetsDir: t.TempDir()}
	for _, opt := range opts {
		opt(&cfg)
	}

	repos := memory.NewRepositories(memory.NewSampleStore())
	clock := service.WithClock(func() time.Time {
		return time.Date(2023, time.May, 10, 9, 0, 0, 0, time.UTC)
	})
	reports := service.NewReportService(repos, clock)

	viewer, err := NewViewerHandler(reports, cfg.basePath)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(Handlers{
		Health:     NewHealthHandler("test", "memory", time.Second, nil, nil),
		Reports:    NewReportHandler(reports),
		Management: NewManagementHandler(service.NewManagementService(repos)),
		Viewer:     viewer,
		Assets:     NewAssetsHandler(assets.NewLocalSource(cfg.assetsDir)),
		Auth:       cfg.auth,
	}, logger, cfg.authenticate)

	return &testServer{router: router}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var status HealthStatus
	decodeEnvelope(t, w, &status)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "memory", status.Backend)

	w = server.do(t, http.MethodGet, "/health/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantBalanceEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/api/v1/reports/balance/tenant/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		TenantName   string `json:"tenant_name"`
		LeaseSummary struct {
			MonthsActive int     `json:"months_active"`
			TotalRentDue float64 `json:"total_rent_due"`
			TotalPaid    float64 `json:"total_paid"`
			Balance      float64 `json:"balance"`
		} `json:"lease_summary"`
	}
	env := decodeEnvelope(t, w, &report)
	assert.True(t, env.Success)
	assert.Equal(t, "John Smith", report.TenantName)
	assert.Equal(t, 5, report.LeaseSummary.MonthsActive)
	assert.Equal(t, 6000.0, report.LeaseSummary.TotalRentDue)
	assert.Equal(t, 1200.0, report.LeaseSummary.TotalPaid)
	assert.Equal(t, 4800.0, report.LeaseSummary.Balance)
}

func TestBalanceReportDispatch(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name  string
		query string
		key   string
		value float64
	}{
		{"portfolio", "", "property_count", 2},
		{"property", "?property_id=2", "property_id", 2},
		{"unit wins over property", "?property_id=1&unit_id=3", "unit_id", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.do(t, http.MethodGet, "/api/v1/reports/balance"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var data map[string]interface{}
			decodeEnvelope(t, w, &data)
			assert.Equal(t, tt.value, data[tt.key])
		})
	}

	w := server.do(t, http.MethodGet, "/api/v1/reports/balance?unit_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportEndpoints_Errors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"unknown unit", "/api/v1/reports/balance/unit/99", http.StatusNotFound, "UNIT_NOT_FOUND"},
		{"unknown property", "/api/v1/reports/balance/property/99", http.StatusNotFound, "PROPERTY_NOT_FOUND"},
		{"unknown tenant", "/api/v1/reports/balance/tenant/99", http.StatusNotFound, "TENANT_NOT_FOUND"},
		{"unknown summary", "/api/v1/reports/summary/property/99", http.StatusNotFound, "PROPERTY_NOT_FOUND"},
		{"bad id", "/api/v1/reports/balance/unit/abc", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"zero id", "/api/v1/reports/balance/unit/0", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.do(t, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)

			env := decodeEnvelope(t, w, nil)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error)
		})
	}
}

func TestPropertySummaryEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/api/v1/reports/summary/property/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary struct {
		UnitCount    int     `json:"unit_count"`
		TotalBalance float64 `json:"total_balance"`
	}
	decodeEnvelope(t, w, &summary)
	assert.Equal(t, 2, summary.UnitCount)
	assert.Equal(t, 7800.0, summary.TotalBalance)
}

func TestPropertyCRUD(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodPost, "/api/v1/properties", map[string]string{"name": "Harbor Lofts", "address": "9 Pier Rd"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
	decodeEnvelope(t, w, &created)
	assert.Equal(t, "Harbor Lofts", created.Name)
	assert.NotZero(t, created.ID)

	w = server.do(t, http.MethodPut, "/api/v1/properties/"+itoa(created.ID), map[string]string{"name": "Harbor Lofts East", "address": "9 Pier Rd"})
	require.Equal(t, http.StatusOK, w.Code)

	w = server.do(t, http.MethodGet, "/api/v1/properties", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]interface{}
	decodeEnvelope(t, w, &all)
	assert.Len(t, all, 3)

	w = server.do(t, http.MethodDelete, "/api/v1/properties/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = server.do(t, http.MethodGet, "/api/v1/properties/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateValidation(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		path string
		body interface{}
	}{
		{"property without name", "/api/v1/properties", map[string]string{"address": "1 Main St"}},
		{"unknown field", "/api/v1/properties", map[string]string{"name": "A", "address": "B", "color": "red"}},
		{"zero payment", "/api/v1/payments", map[string]interface{}{
			"lease_id": 1, "tenant_id": 1, "amount": 0, "payment_date": "2023-04-01", "payment_method": "cash",
		}},
		{"payment without date", "/api/v1/payments", map[string]interface{}{
			"lease_id": 1, "tenant_id": 1, "amount": 100, "payment_method": "cash",
		}},
		{"bad payment method", "/api/v1/payments", map[string]interface{}{
			"lease_id": 1, "tenant_id": 1, "amount": 100, "payment_date": "2023-04-01", "payment_method": "barter",
		}},
		{"lease without tenants", "/api/v1/leases", map[string]interface{}{
			"property_id": 1, "unit_id": 1, "rent_amount": 900, "start_date": "2023-06-01", "end_date": "2024-06-01",
		}},
		{"lease ending before start", "/api/v1/leases", map[string]interface{}{
			"property_id": 1, "unit_id": 1, "rent_amount": 900, "start_date": "2023-06-01", "end_date": "2023-01-01", "tenant_ids": []int{1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := server.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w, nil).Error)
		})
	}
}

func TestPaymentFlowUpdatesReport(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodPost, "/api/v1/payments", map[string]interface{}{
		"lease_id":       1,
		"tenant_id":      1,
		"amount":         "1200.00",
		"payment_date":   "2023-02-05",
		"payment_method": "check",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var payment struct {
		PaymentType string          `json:"payment_type"`
		Amount      decimal.Decimal `json:"amount"`
	}
	decodeEnvelope(t, w, &payment)
	assert.Equal(t, "rent", payment.PaymentType)
	assert.True(t, payment.Amount.Equal(decimal.NewFromInt(1200)))

	w = server.do(t, http.MethodGet, "/api/v1/reports/balance/unit/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report struct {
		Balance        float64 `json:"balance"`
		MissingPeriods []struct {
			Month int `json:"month"`
		} `json:"missing_periods"`
	}
	decodeEnvelope(t, w, &report)
	assert.Equal(t, 3600.0, report.Balance)
	assert.Len(t, report.MissingPeriods, 3)

	w = server.do(t, http.MethodGet, "/api/v1/leases/1/payments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var payments []map[string]interface{}
	decodeEnvelope(t, w, &payments)
	assert.Len(t, payments, 2)
}

func TestDeleteConflicts(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodDelete, "/api/v1/properties/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", decodeEnvelope(t, w, nil).Error)

	w = server.do(t, http.MethodDelete, "/api/v1/payments/3", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = server.do(t, http.MethodDelete, "/api/v1/payments/3", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNestedListings(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		path  string
		count int
	}{
		{"/api/v1/properties/1/units", 2},
		{"/api/v1/properties/1/leases", 2},
		{"/api/v1/units/3/tenants", 1},
		{"/api/v1/units/3/leases", 1},
		{"/api/v1/tenants/2/leases", 1},
		{"/api/v1/tenants/2/payments", 1},
		{"/api/v1/units", 3},
		{"/api/v1/tenants", 3},
		{"/api/v1/leases", 3},
		{"/api/v1/payments", 3},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := server.do(t, http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var items []map[string]interface{}
			decodeEnvelope(t, w, &items)
			assert.Len(t, items, tt.count)
		})
	}

	w := server.do(t, http.MethodGet, "/api/v1/properties/99/units", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExport(t *testing.T) {
	server := newTestServer(t)

	w := server.do(t, http.MethodGet, "/api/v1/reports/balance/export?format=csv", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "balance-report-2023-05-10.csv")
	assert.Contains(t, w.Body.String(), "1,Sunset Apartments,2,2,10000.00,2200.00,7800.00,2")

	w = server.do(t, http.MethodGet, "/api/v1/reports/balance/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = server.do(t, http.MethodGet, "/api/v1/reports/balance/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestViewer(t *testing.T) {
	server := newTestServer(t, withBasePath("/prod/"))

	w := server.do(t, http.MethodGet, "/report-viewer/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `href="/prod/report-viewer/property/1"`)
	assert.Contains(t, w.Body.String(), `href="/prod/static/report.css"`)

	w = server.do(t, http.MethodGet, "/report-viewer/property", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$10,800.00")

	w = server.do(t, http.MethodGet, "/report-viewer/property/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Sunset Apartments")
	assert.Contains(t, w.Body.String(), `href="/prod/report-viewer/unit/2"`)

	w = server.do(t, http.MethodGet, "/report-viewer/unit/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "John Smith")
	assert.Contains(t, w.Body.String(), "February 2023")

	w = server.do(t, http.MethodGet, "/report-viewer/tenant/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$4,800.00")
	assert.Contains(t, w.Body.String(), `href="/prod/report-viewer/unit/1"`)

	w = server.do(t, http.MethodGet, "/report-viewer/unit/99", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Unit not found")
}

func TestStaticAssets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.css"), []byte("body{}"), 0o644))
	server := newTestServer(t, func(c *serverConfig) { c.assetsDir = dir })

	w := server.do(t, http.MethodGet, "/static/report.css", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/css"))

	w = server.do(t, http.MethodGet, "/static/missing.js", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutes(t *testing.T) {
	users := map[string]*auth.User{
		"admin": {UserID: "1", Groups: []string{auth.AdminGroup}},
		"staff": {UserID: "2", Groups: []string{}},
	}
	authenticate := auth.Middleware(verifierFunc(func(ctx context.Context, token string) (*auth.User, error) {
		if user, ok := users[token]; ok {
			return user, nil
		}
		return nil, errors.New("unknown token")
	}))
	server := newTestServer(t, withAuthenticate(authenticate))

	w := server.do(t, http.MethodGet, "/api/v1/properties", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = server.do(t, http.MethodGet, "/report-viewer/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = server.do(t, http.MethodGet, "/api/v1/properties", nil, "Authorization", "Bearer staff")
	assert.Equal(t, http.StatusOK, w.Code)

	w = server.do(t, http.MethodDelete, "/api/v1/payments/1", nil, "Authorization", "Bearer staff")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = server.do(t, http.MethodDelete, "/api/v1/payments/1", nil, "Authorization", "Bearer admin")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = server.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

type verifierFunc func(ctx context.Context, token string) (*auth.User, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*auth.User, error) {
	return f(ctx, token)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   decimal.Decimal
		expected string
	}{
		{decimal.Zero, "$0.00"},
		{decimal.NewFromInt(999), "$999.00"},
		{decimal.NewFromInt(1000), "$1,000.00"},
		{decimal.RequireFromString("1234567.891"), "$1,234,567.89"},
		{decimal.NewFromInt(-2500), "-$2,500.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatMoney(tt.amount))
	}
	assert.Equal(t, "-", formatMoney((*decimal.Decimal)(nil)))
}

func itoa(id int64) string {
	return decimal.NewFromInt(id).String()
}
