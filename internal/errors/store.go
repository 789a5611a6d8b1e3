package errors

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// DynamoDB error codes recognized by MapStoreError.
const (
	codeResourceNotFound     = "ResourceNotFoundException"
	codeThroughputExceeded   = "ProvisionedThroughputExceededException"
	codeThrottling           = "ThrottlingException"
	codeRequestLimitExceeded = "RequestLimitExceeded"
	codeValidation           = "ValidationException"
	codeInternalServer       = "InternalServerError"
	codeServiceUnavailable   = "ServiceUnavailable"
)

// MapStoreError maps key-value store errors to AppError instances:
//   - context deadline/cancel → Timeout/Canceled
//   - ResourceNotFoundException → NotFound (missing table or index)
//   - throughput and throttling faults → Throttled
//   - ValidationException → Validation
//   - any other server fault → Unavailable
//
// Errors that are neither context nor API errors are returned unchanged.
func MapStoreError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{Code: ErrCodeTimeout, Message: "Store request timed out.", Cause: err}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{Code: ErrCodeCanceled, Message: "Store request was canceled.", Cause: err}
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case codeResourceNotFound:
		return &AppError{Code: ErrCodeNotFound, Message: "Table or index not found", Cause: err}
	case codeThroughputExceeded, codeThrottling, codeRequestLimitExceeded:
		return &AppError{Code: ErrCodeThrottled, Message: "Store request was throttled", Cause: err}
	case codeValidation:
		return &AppError{Code: ErrCodeValidation, Message: "Store rejected the request", Cause: err}
	case codeInternalServer, codeServiceUnavailable:
		return &AppError{Code: ErrCodeUnavailable, Message: "Store is unavailable", Cause: err}
	}

	if apiErr.ErrorFault() == smithy.FaultServer {
		return &AppError{Code: ErrCodeUnavailable, Message: "Store is unavailable", Cause: err}
	}
	return &AppError{Code: ErrCodeInternal, Message: "Store request failed", Cause: err}
}
