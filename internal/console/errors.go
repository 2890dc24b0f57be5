package console

import (
	"errors"
	"fmt"
	"net/http"

	"members-service/internal/members"
)

// actionError ошибка действия страницы с HTTP-статусом и кодом для клиента.
type actionError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *actionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *actionError) Unwrap() error {
	return e.Err
}

func badRequest(msg string) *actionError {
	return &actionError{Status: http.StatusBadRequest, Code: "BAD_REQUEST", Message: msg}
}

// toActionError приводит ошибки страницы к actionError.
func toActionError(err error) *actionError {
	var ae *actionError
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, members.ErrUnknownMember):
		return &actionError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "member not found", Err: err}
	case errors.Is(err, members.ErrInvalidTransition):
		return &actionError{Status: http.StatusConflict, Code: "INVALID_TRANSITION", Message: err.Error()}
	default:
		return &actionError{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "internal error", Err: err}
	}
}
