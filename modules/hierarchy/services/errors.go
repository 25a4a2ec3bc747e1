package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/accordhr/accord-hrms/modules/hierarchy/domain/events"
)

// Sentinel link errors. AlreadyAssignedError wraps ErrAlreadyAssigned with the
// current owner so callers can build a human-readable failure reason.
var (
	ErrAlreadyAssigned = errors.New("already assigned")
	ErrNotLinked       = errors.New("not linked")
	ErrNotWorking      = errors.New("employee is not working")
)

type AlreadyAssignedError struct {
	Axis      events.Axis
	OwnerID   uuid.UUID
	OwnerName string
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("already assigned to %s", e.OwnerName)
}

func (e *AlreadyAssignedError) Is(target error) bool {
	return target == ErrAlreadyAssigned
}

type ServiceError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ServiceError) Unwrap() error { return e.Cause }

func newServiceError(status int, code, message string, cause error) *ServiceError {
	return &ServiceError{Status: status, Code: code, Message: message, Cause: cause}
}

func invalidBody(message string) *ServiceError {
	return newServiceError(http.StatusBadRequest, "HIERARCHY_INVALID_BODY", message, nil)
}

func notFound(message string, cause error) *ServiceError {
	return newServiceError(http.StatusNotFound, "HIERARCHY_NOT_FOUND", message, cause)
}

func conflict(message string, cause error) *ServiceError {
	return newServiceError(http.StatusConflict, "HIERARCHY_CONFLICT", message, cause)
}
