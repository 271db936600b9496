package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := New(CodeNotFound, "task missing")
	if !errors.Is(err, New(CodeNotFound, "different message")) {
		t.Fatal("expected errors with the same code to match")
	}
	if errors.Is(err, New(CodePermissionDenied, "task missing")) {
		t.Fatal("expected errors with different codes not to match")
	}
}

func TestWrapPreservesCause(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("disk full")
	err := Wrap(CodeUnknown, "save task", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestCodeOf(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("handler: %w", New(CodePermissionDenied, "not the owner"))
	if got := CodeOf(wrapped); got != CodePermissionDenied {
		t.Fatalf("CodeOf = %q, want %q", got, CodePermissionDenied)
	}
	if got := CodeOf(fmt.Errorf("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf plain error = %q, want %q", got, CodeUnknown)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want int
	}{
		{CodeTaskTitleEmpty, http.StatusBadRequest},
		{CodeTaskTitleTooLong, http.StatusBadRequest},
		{CodeTaskDescriptionTooLong, http.StatusBadRequest},
		{CodeTaskInvalidStatus, http.StatusBadRequest},
		{CodeTaskInvalidPriority, http.StatusBadRequest},
		{CodeTaskInvalidDueDate, http.StatusBadRequest},
		{CodeFilterInvalidPriority, http.StatusBadRequest},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeUnknown, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		if got := tc.code.HTTPStatus(); got != tc.want {
			t.Fatalf("%s HTTPStatus = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestIsValidation(t *testing.T) {
	t.Parallel()

	if !IsValidation(New(CodeTaskInvalidPriority, "priority out of range")) {
		t.Fatal("expected validation error")
	}
	if IsValidation(New(CodeNotFound, "missing")) {
		t.Fatal("not-found is not a validation error")
	}
}

func TestWithMetadataCarriesFields(t *testing.T) {
	t.Parallel()

	err := WithMetadata(CodeTaskTitleEmpty, "title is required", map[string]string{"field": "title"})
	if err.Metadata["field"] != "title" {
		t.Fatalf("metadata field = %q, want %q", err.Metadata["field"], "title")
	}
}
