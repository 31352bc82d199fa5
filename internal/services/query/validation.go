package query

import (
	"errors"
	"time"
)

// User-facing validation messages.
const (
	MsgInFlight       = "Please wait for the previous request to complete"
	MsgNoWebsite      = "Please select website"
	MsgNoStart        = "Please select start date"
	MsgNoEnd          = "Please select end date"
	MsgSameDates      = "Start date and end date should not be same"
	MsgBadStart       = "Start date must be in YYYY-MM-DD format"
	MsgBadEnd         = "End date must be in YYYY-MM-DD format"
	MsgEndBeforeStart = "End date must be after start date"
	MsgStartNotPast   = "Start date must be before today"
	MsgEndInFuture    = "End date cannot be in the future"
)

// ErrInFlight is matched by the error returned when a fetch is already running.
var ErrInFlight = errors.New("request in flight")

// ValidationError rejects a submission with a message meant for the user.
type ValidationError struct {
	err     error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Unwrap returns the sentinel behind the error, if any.
func (e *ValidationError) Unwrap() error {
	return e.err
}

// UserMessage returns the text to show for err. Validation errors carry their
// own message; anything else falls back to err.Error().
func UserMessage(err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func invalid(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// Validate checks a form against the submission rules, in the order the user
// should see them. now decides which dates count as past and future.
func Validate(f Form, allTime bool, now time.Time) error {
	if f.WebsiteID == "" {
		return invalid(MsgNoWebsite)
	}
	if allTime {
		return nil
	}
	if f.Start == "" {
		return invalid(MsgNoStart)
	}
	if f.End == "" {
		return invalid(MsgNoEnd)
	}

	start, startErr := parseDate(f.Start)
	end, endErr := parseDate(f.End)
	if f.Start == f.End || (startErr == nil && endErr == nil && start.Equal(end)) {
		return invalid(MsgSameDates)
	}
	if startErr != nil {
		return invalid(MsgBadStart)
	}
	if endErr != nil {
		return invalid(MsgBadEnd)
	}
	if end.Before(start) {
		return invalid(MsgEndBeforeStart)
	}

	now = now.In(time.Local)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if !start.Before(today) {
		return invalid(MsgStartNotPast)
	}
	if end.After(today) {
		return invalid(MsgEndInFuture)
	}
	return nil
}
