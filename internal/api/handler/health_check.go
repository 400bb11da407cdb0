package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/meta-health-agent/internal/domain"
	"github.com/vfg2006/meta-health-agent/internal/usecases/diagnosing"
	"github.com/vfg2006/meta-health-agent/pkg/apiErrors"
	"github.com/vfg2006/meta-health-agent/pkg/log"
	"github.com/vfg2006/meta-health-agent/pkg/middleware"
	"github.com/vfg2006/meta-health-agent/pkg/utils"
)

const maxRequestBody = 1 << 20

// DailyHealthCheck recebe a conta e o período e responde com o relatório de saúde
func DailyHealthCheck(service diagnosing.HealthChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.HealthCheckRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
			logger.WithError(err).Warn("health: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid request body", nil)
			return
		}

		if req.AccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, diagnosing.ErrAccountIDRequired.Error(), nil)
			return
		}

		filters, code, err := parseFilters(req)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": req.AccountID,
				"start_date": req.StartDate,
				"end_date":   req.EndDate,
				"error":      err.Error(),
			}).Warn("health: invalid date range")

			apiErrors.WriteError(w, code, err.Error(), nil)
			return
		}

		if !middleware.CanAccessAccount(r.Context(), req.AccountID) {
			logger.WithField("account_id", req.AccountID).Warn("health: token not allowed for account")
			apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "token does not grant access to this account", nil)
			return
		}

		report, err := service.DailyHealthCheck(r.Context(), req.AccountID, filters)
		if err != nil {
			writeHealthCheckError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("health: failed to encode report")
		}
	})
}

// parseFilters converte as datas do corpo; retorna também o código de erro da API
func parseFilters(req domain.HealthCheckRequest) (*domain.InsightFilters, string, error) {
	startDate, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, dateErrorCode(err), errors.New("start_date: " + err.Error())
	}

	endDate, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, dateErrorCode(err), errors.New("end_date: " + err.Error())
	}

	filters := &domain.InsightFilters{
		StartDate: startDate,
		EndDate:   endDate,
	}
	if !filters.Valid() {
		return nil, apiErrors.ErrInvalidRequest, diagnosing.ErrInvalidDateRange
	}

	return filters, "", nil
}

func dateErrorCode(err error) string {
	if errors.Is(err, utils.ErrEmptyDate) {
		return apiErrors.ErrMissingRequiredData
	}
	return apiErrors.ErrInvalidFormat
}

func writeHealthCheckError(w http.ResponseWriter, err error) {
	var hcErr *diagnosing.HealthCheckError

	switch {
	case errors.Is(err, diagnosing.ErrNoInsights):
		apiErrors.WriteError(w, apiErrors.ErrNoInsights, diagnosing.ErrNoInsights.Error(), nil)
	case errors.Is(err, diagnosing.ErrAccountIDRequired), errors.Is(err, diagnosing.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.As(err, &hcErr) && hcErr.Details != "":
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, hcErr.Details, nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
