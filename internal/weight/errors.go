// Package weight implements the free-text weight-command parser and the
// time-bucketed aggregation used by the weights API. Both are pure: the
// current time is always an explicit parameter.
package weight

// Stable machine-readable codes carried by every validation failure.
const (
	CodeWeightRequired   = "weight_required"
	CodeWeightInvalid    = "weight_invalid"
	CodeWeightOutOfRange = "weight_out_of_range"
	CodeTextEmpty        = "text_empty"
	CodeWeightMissing    = "weight_missing"
	CodeDateMissing      = "date_missing"
	CodeDateInvalid      = "date_invalid"
	CodeDateFuture       = "date_future"
)

// ValidationError is a tagged validation failure: a stable code plus a
// human-readable French message. The parser never wraps one of these into a
// generic error.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

func errDateInvalid() *ValidationError {
	return validationErr(CodeDateInvalid, "La date est invalide.")
}

func errDateFuture() *ValidationError {
	return validationErr(CodeDateFuture, "La date ne peut pas être dans le futur.")
}
