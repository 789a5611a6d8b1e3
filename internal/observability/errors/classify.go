package errors

import (
	goerrors "errors"
	"reflect"
	"strings"

	"github.com/aws/smithy-go"

	apperrors "github.com/jobpilot/jobreview/internal/errors"
)

// Classify returns a normalized error name suitable for tagging metrics and logs.
// Store API errors are named by their error code, application errors by their AppError code,
// anything else by the innermost concrete type in snake_case-ish form.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var apiErr smithy.APIError
	if goerrors.As(err, &apiErr) && apiErr.ErrorCode() != "" {
		return strings.ToLower(apiErr.ErrorCode())
	}
	if code := apperrors.GetCode(err); code != "" {
		return string(code)
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
