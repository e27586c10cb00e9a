package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons. Controllers match these with
// errors.Is and map them onto the response codes above.
var (
	ErrNotFound            = errors.New("not_found")
	ErrAlreadyOccupied     = errors.New("already_occupied")
	ErrNoActiveLease       = errors.New("no_active_lease")
	ErrInvalidDates        = errors.New("invalid_dates")
	ErrUnitRequired        = errors.New("unit_required")
	ErrUnitNotAllowed      = errors.New("unit_not_allowed")
	ErrTenantAlreadyHoused = errors.New("tenant_already_housed")
	ErrTenantNotActive     = errors.New("tenant_not_active")
	ErrLeaseExists         = errors.New("lease_exists")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	ErrNoRowsUpdated = errors.New("no_rows_updated")

	// For external service failures (Twilio, SendGrid)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap lets errors.Is reach the sentinel underneath.
func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

/*
RowVersionConflictError is returned when there's a concurrency mismatch.
It includes the latest aggregate state so the controller can return it
to the client if desired.
*/
type RowVersionConflictError struct {
	Current any
}

func (e *RowVersionConflictError) Error() string {
	return "row_version_conflict"
}

func NewRowVersionConflictError(current any) error {
	return &RowVersionConflictError{Current: current}
}
