// Package recerr defines the typed error kinds the recommendation pipeline
// and its sessions surface to the driver layer.
package recerr

import "fmt"

// Kind is one of the seven error kinds the pipeline distinguishes.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindInvalidTurn  Kind = "invalid_turn"
	KindUnavailable  Kind = "unavailable"
	KindStale        Kind = "stale"
	KindMissingData  Kind = "missing_data"
	KindTimeout      Kind = "timeout"
	KindParseFailure Kind = "parse_failure"
)

// RecommendError is a typed error carrying a Kind so driver-surface code can
// switch on Code instead of string-matching, mirroring the shape of the
// teacher's websocket.PauseError.
type RecommendError struct {
	Code    Kind
	Message string
}

func (e *RecommendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(kind Kind, format string, args ...any) *RecommendError {
	return &RecommendError{Code: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *RecommendError {
	return New(KindNotFound, format, args...)
}

func InvalidTurn(format string, args ...any) *RecommendError {
	return New(KindInvalidTurn, format, args...)
}

func Unavailable(format string, args ...any) *RecommendError {
	return New(KindUnavailable, format, args...)
}

func Stale(format string, args ...any) *RecommendError {
	return New(KindStale, format, args...)
}

func MissingData(format string, args ...any) *RecommendError {
	return New(KindMissingData, format, args...)
}

func Timeout(format string, args ...any) *RecommendError {
	return New(KindTimeout, format, args...)
}

func ParseFailure(format string, args ...any) *RecommendError {
	return New(KindParseFailure, format, args...)
}

// Is supports errors.Is comparisons against a bare Kind sentinel created via
// New(kind, "").
func (e *RecommendError) Is(target error) bool {
	t, ok := target.(*RecommendError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
