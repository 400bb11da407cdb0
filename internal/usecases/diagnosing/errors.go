package diagnosing

import (
	"errors"
	"fmt"
)

// Erros específicos do health check
var (
	ErrAccountIDRequired = errors.New("account_id is required")
	ErrInvalidDateRange  = errors.New("start_date and end_date are required and start_date must not be after end_date")
	ErrNoInsights        = errors.New("No insights found.")
	ErrRecordFetch       = errors.New("error fetching insights")
)

// HealthCheckError é um erro com contexto adicional sobre a conta consultada
type HealthCheckError struct {
	Err       error
	AccountID string
	Details   string
}

func (e *HealthCheckError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *HealthCheckError) Unwrap() error {
	return e.Err
}

// NewHealthCheckError cria um novo HealthCheckError
func NewHealthCheckError(err error, accountID string, details string) *HealthCheckError {
	return &HealthCheckError{
		Err:       err,
		AccountID: accountID,
		Details:   details,
	}
}
