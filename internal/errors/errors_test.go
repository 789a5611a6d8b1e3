package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  &AppError{Code: ErrCodeNotFound, Message: "job not found"},
			want: "job not found",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeUnavailable,
				Message: "failed to query",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to query: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &AppError{Code: ErrCodeInternal, Message: "wrapped error", Cause: cause}

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("AppError.Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestNotFoundf(t *testing.T) {
	err := NotFoundf("job %s not found", "abc")
	if err.Code != ErrCodeNotFound {
		t.Errorf("NotFoundf().Code = %v, want %v", err.Code, ErrCodeNotFound)
	}
	if err.Message != "job abc not found" {
		t.Errorf("NotFoundf().Message = %v, want %v", err.Message, "job abc not found")
	}
}

func TestValidationField(t *testing.T) {
	err := ValidationField("decision", "must be applied or declined")
	if err.Code != ErrCodeValidation {
		t.Errorf("ValidationField().Code = %v, want %v", err.Code, ErrCodeValidation)
	}
	if err.Field != "decision" {
		t.Errorf("ValidationField().Field = %v, want %v", err.Field, "decision")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, ErrCodeInternal, "x") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, ErrCodeInternal, "x %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	cause := errors.New("boom")
	err := Wrapf(cause, ErrCodeThrottled, "query %s", "jobs")
	if err.Message != "query jobs" {
		t.Errorf("Wrapf().Message = %v, want %v", err.Message, "query jobs")
	}
	if !errors.Is(err, cause) {
		t.Error("Wrapf() should preserve the cause")
	}
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"not found", NotFound("x"), IsNotFound},
		{"validation", Validation("x"), IsValidation},
		{"throttled", &AppError{Code: ErrCodeThrottled}, IsThrottled},
		{"unavailable", &AppError{Code: ErrCodeUnavailable}, IsUnavailable},
		{"internal", Internal("x"), IsInternal},
		{"timeout", &AppError{Code: ErrCodeTimeout}, IsTimeout},
		{"canceled", &AppError{Code: ErrCodeCanceled}, IsCanceled},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("x")), IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.check(tt.err) {
				t.Errorf("check(%v) = false, want true", tt.err)
			}
			if tt.check(errors.New("plain")) {
				t.Error("check(plain error) = true, want false")
			}
		})
	}
}

func TestGetCodeAndField(t *testing.T) {
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
	err := fmt.Errorf("wrap: %w", ValidationField("cursor", "bad"))
	if got := GetCode(err); got != ErrCodeValidation {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeValidation)
	}
	if got := GetField(err); got != "cursor" {
		t.Errorf("GetField() = %v, want %v", got, "cursor")
	}
}
