// Package errors provides structured error handling with machine-readable codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Task validation errors
	CodeTaskTitleEmpty         Code = "TASK_TITLE_EMPTY"
	CodeTaskTitleTooLong       Code = "TASK_TITLE_TOO_LONG"
	CodeTaskDescriptionTooLong Code = "TASK_DESCRIPTION_TOO_LONG"
	CodeTaskInvalidStatus      Code = "TASK_INVALID_STATUS"
	CodeTaskInvalidPriority    Code = "TASK_INVALID_PRIORITY"
	CodeTaskInvalidDueDate     Code = "TASK_INVALID_DUE_DATE"
	CodeFilterInvalidPriority  Code = "FILTER_INVALID_PRIORITY"

	// Authorization errors
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeTaskTitleEmpty,
		CodeTaskTitleTooLong,
		CodeTaskDescriptionTooLong,
		CodeTaskInvalidStatus,
		CodeTaskInvalidPriority,
		CodeTaskInvalidDueDate,
		CodeFilterInvalidPriority:
		return http.StatusBadRequest

	case CodePermissionDenied:
		return http.StatusForbidden

	case CodeUnauthenticated:
		return http.StatusUnauthorized

	case CodeNotFound:
		return http.StatusNotFound

	default:
		return http.StatusInternalServerError
	}
}

// IsValidation reports whether the code describes user-correctable input.
func (c Code) IsValidation() bool {
	return c.HTTPStatus() == http.StatusBadRequest
}
