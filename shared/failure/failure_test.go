package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"lodge/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "with error",
			input:    errors.New("validation failed"),
			expected: &failure.Failure{Code: http.StatusBadRequest, Message: "validation failed"},
		},
		{
			name:     "with nil error",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.BadRequest(tt.input)

			if tt.expected == nil {
				if result != nil {
					t.Errorf("expected nil, got %v", result)
				}
			} else {
				f, ok := result.(*failure.Failure)
				if !ok {
					t.Errorf("expected result to be *failure.Failure, got %T", result)
				} else {
					expectedF := tt.expected.(*failure.Failure)
					if f.Code != expectedF.Code || f.Message != expectedF.Message {
						t.Errorf("expected %+v, got %+v", expectedF, f)
					}
				}
			}
		})
	}
}

func TestValidation(t *testing.T) {
	result := failure.Validation("guest_count", "room sleeps at most 2 guests")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusBadRequest {
		t.Errorf("expected code to be %d, got %d", http.StatusBadRequest, f.Code)
	}
	if f.Kind != failure.KindValidation {
		t.Errorf("expected kind to be %s, got %s", failure.KindValidation, f.Kind)
	}
	if f.Field != "guest_count" {
		t.Errorf("expected field to be 'guest_count', got %s", f.Field)
	}
}

func TestRoomConflict(t *testing.T) {
	checkIn := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	result := failure.RoomConflict("room-1", checkIn, checkOut)

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
	}
	if f.Kind != failure.KindConflict {
		t.Errorf("expected kind to be %s, got %s", failure.KindConflict, f.Kind)
	}
	if f.Field != "room_id" {
		t.Errorf("expected field to be 'room_id', got %s", f.Field)
	}

	expected := "room room-1 is already booked between 2026-03-10 and 2026-03-12"
	if f.Message != expected {
		t.Errorf("expected message to be %q, got %q", expected, f.Message)
	}
}

func TestInvalidTransition(t *testing.T) {
	result := failure.InvalidTransition("checked_out", "checked_in")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
	}
	if f.Kind != failure.KindInvalidTransition {
		t.Errorf("expected kind to be %s, got %s", failure.KindInvalidTransition, f.Kind)
	}

	expected := "cannot transition booking from checked_out to checked_in"
	if f.Message != expected {
		t.Errorf("expected message to be %q, got %q", expected, f.Message)
	}
}

func TestTransient(t *testing.T) {
	result := failure.Transient(errors.New("connection reset"))

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Kind != failure.KindTransient {
		t.Errorf("expected kind to be %s, got %s", failure.KindTransient, f.Kind)
	}
	if !failure.IsTransient(result) {
		t.Error("expected IsTransient to report true")
	}
	if failure.IsTransient(errors.New("plain error")) {
		t.Error("expected IsTransient to report false for a plain error")
	}
}

func TestNotFound(t *testing.T) {
	result := failure.NotFound("booking not found")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusNotFound {
		t.Errorf("expected code to be %d, got %d", http.StatusNotFound, f.Code)
	}
	if f.Message != "booking not found" {
		t.Errorf("expected message to be 'booking not found', got %s", f.Message)
	}
}

func TestConflict(t *testing.T) {
	result := failure.Conflict("booking is not fully paid")

	f, ok := result.(*failure.Failure)
	if !ok {
		t.Fatalf("expected result to be *failure.Failure, got %T", result)
	}

	if f.Code != http.StatusConflict {
		t.Errorf("expected code to be %d, got %d", http.StatusConflict, f.Code)
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected int
	}{
		{
			name:     "failure error",
			input:    &failure.Failure{Code: http.StatusBadRequest, Message: "test"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped failure error",
			input:    fmt.Errorf("outer: %w", failure.NotFound("missing")),
			expected: http.StatusNotFound,
		},
		{
			name:     "regular error",
			input:    errors.New("regular error"),
			expected: http.StatusInternalServerError,
		},
		{
			name:     "nil error",
			input:    nil,
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetCode(tt.input)
			if result != tt.expected {
				t.Errorf("expected code to be %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected failure.Kind
	}{
		{
			name:     "validation failure",
			input:    failure.Validation("status", "invalid"),
			expected: failure.KindValidation,
		},
		{
			name:     "wrapped conflict",
			input:    fmt.Errorf("outer: %w", failure.Conflict("taken")),
			expected: failure.KindConflict,
		},
		{
			name:     "plain error maps to internal",
			input:    errors.New("boom"),
			expected: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := failure.GetKind(tt.input)
			if result != tt.expected {
				t.Errorf("expected kind to be %s, got %s", tt.expected, result)
			}

			if !failure.IsKind(tt.input, tt.expected) {
				t.Errorf("expected IsKind to report true for %s", tt.expected)
			}
		})
	}
}
