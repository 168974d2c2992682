// Package apperr defines the operational error taxonomy of the exam core.
// These errors are expected caller-facing outcomes, not defects; controllers
// surface them verbatim (kind plus offending identifiers). Anything that is
// not an *apperr.Error is treated as an infrastructure fault.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound          Kind = "not_found"
	KindWindowClosed      Kind = "window_closed"
	KindAlreadyStarted    Kind = "already_started"
	KindNotStarted        Kind = "not_started"
	KindAlreadySubmitted  Kind = "already_submitted"
	KindDeadlineExceeded  Kind = "deadline_exceeded"
	KindInvalidShape      Kind = "invalid_shape"
	KindInvalidQuestionID Kind = "invalid_question_id"
	KindDuplicateAnswer   Kind = "duplicate_answer"
	KindInvalidOption     Kind = "invalid_option"
	KindUnauthorized      Kind = "unauthorized"
	KindForbidden         Kind = "forbidden"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf reports the taxonomy kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// Status maps the kind to the HTTP status controllers respond with.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound, KindNotStarted:
		return http.StatusNotFound
	case KindAlreadyStarted, KindAlreadySubmitted:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}
