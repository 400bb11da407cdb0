package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing/mocks"
	"github.com/vfg2006/meta-health-agent/pkg/apiErrors"
	"github.com/vfg2006/meta-health-agent/pkg/log"
	"github.com/vfg2006/meta-health-agent/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func postHealthCheck(t *testing.T, handler http.Handler, body string, ctx context.Context) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/meta/daily_health_check", strings.NewReader(body))
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestDailyHealthCheck_Success(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockHealthChecker(ctrl)

	benchmark := 1.0
	report := &domain.HealthReport{
		Summary:      "Found 1 issues (1 high, 0 medium). Total spend RM25.00.",
		AccountStats: domain.AccountStats{Spend: 25, Impressions: 1000, Clicks: 5, CTR: 0.005, CPC: 5},
		Issues: []domain.Issue{{
			Level: domain.LevelHigh, CampaignID: "1", CampaignName: "A", Metric: "CTR (%)",
			Value: 0.5, Benchmark: &benchmark,
		}},
	}

	service.EXPECT().DailyHealthCheck(gomock.Any(), "123", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, filters *domain.InsightFilters) (*domain.HealthReport, error) {
			assert.Equal(t, "2025-03-01", filters.StartDate.Format(time.DateOnly))
			assert.Equal(t, "2025-03-07", filters.EndDate.Format(time.DateOnly))
			return report, nil
		},
	)

	rec := postHealthCheck(t, DailyHealthCheck(service), `{"account_id":"123","start_date":"2025-03-01","end_date":"2025-03-07"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, report.Summary, body["summary"])
	stats := body["account_stats"].(map[string]any)
	assert.Nil(t, stats["results"])
	assert.Nil(t, stats["cpr"])
	assert.Len(t, body["issues"], 1)
}

func TestDailyHealthCheck_ValidationErrors(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "malformed json", body: `{"account_id":`, code: apiErrors.ErrInvalidFormat},
		{name: "missing account", body: `{"start_date":"2025-03-01","end_date":"2025-03-07"}`, code: apiErrors.ErrMissingRequiredData},
		{name: "missing start date", body: `{"account_id":"1","end_date":"2025-03-07"}`, code: apiErrors.ErrMissingRequiredData},
		{name: "bad end date", body: `{"account_id":"1","start_date":"2025-03-01","end_date":"07/03/2025"}`, code: apiErrors.ErrInvalidFormat},
		{name: "start after end", body: `{"account_id":"1","start_date":"2025-03-08","end_date":"2025-03-07"}`, code: apiErrors.ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockHealthChecker(ctrl)

			rec := postHealthCheck(t, DailyHealthCheck(service), tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decodeAPIError(t, rec).Code)
		})
	}
}

func TestDailyHealthCheck_ForbiddenAccount(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	service := mocks.NewMockHealthChecker(ctrl)

	ctx := context.WithValue(context.Background(), middleware.ContextKeyClaims, &domain.Claims{AccountIDs: []string{"999"}})
	rec := postHealthCheck(t, DailyHealthCheck(service), `{"account_id":"123","start_date":"2025-03-01","end_date":"2025-03-07"}`, ctx)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeAPIError(t, rec).Code)
}

func TestDailyHealthCheck_ServiceErrors(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{
			name:    "no insights",
			err:     diagnosing.NewHealthCheckError(diagnosing.ErrNoInsights, "123", ""),
			status:  http.StatusNotFound,
			code:    apiErrors.ErrNoInsights,
			message: "No insights found.",
		},
		{
			name:    "fetch failure carries upstream description",
			err:     diagnosing.NewHealthCheckError(diagnosing.ErrRecordFetch, "123", "meta: request failed with status 400: Invalid parameter"),
			status:  http.StatusInternalServerError,
			code:    apiErrors.ErrInternalServer,
			message: "meta: request failed with status 400: Invalid parameter",
		},
		{
			name:    "unexpected error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			code:    apiErrors.ErrInternalServer,
			message: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := mocks.NewMockHealthChecker(ctrl)
			service.EXPECT().DailyHealthCheck(gomock.Any(), "123", gomock.Any()).Return(nil, tt.err)

			rec := postHealthCheck(t, DailyHealthCheck(service), `{"account_id":"123","start_date":"2025-03-01","end_date":"2025-03-07"}`, nil)

			assert.Equal(t, tt.status, rec.Code)
			apiErr := decodeAPIError(t, rec)
			assert.Equal(t, tt.code, apiErr.Code)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}
