package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeNotFound     = "appointment_not_found"
	CodeTimeConflict = "time_conflict"
	CodeInvalidRange = "invalid_time_range"
	CodeInvalidState = "invalid_state"
	CodeInvalidDelta = "invalid_delta"
	CodeInvalidDate  = "invalid_date"
	CodeInvalidStat  = "invalid_status"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// AsBusiness returns the business code carried by err, if any.
func AsBusiness(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsExclusionConflict reports a Postgres exclusion constraint violation (23P01),
// raised when two scheduled rows of one clinician overlap.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01"
	}
	return false
}
