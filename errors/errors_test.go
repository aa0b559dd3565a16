package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeTypeMismatch, "wrong type")
	if err.Code != ErrCodeTypeMismatch {
		t.Errorf("expected code %s, got %s", ErrCodeTypeMismatch, err.Code)
	}
	if err.Message != "wrong type" {
		t.Errorf("expected message 'wrong type', got %q", err.Message)
	}
	if err.Retryable {
		t.Error("TYPE_MISMATCH should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeNoProvider, "missing")
	if !err.Retryable {
		t.Error("NO_PROVIDER should be retryable")
	}
}

func TestAppError_NoProvider_Success(t *testing.T) {
	err := NoProvider("*di.Clock", "utc")
	if err.Code != ErrCodeNoProvider {
		t.Errorf("expected NO_PROVIDER, got %s", err.Code)
	}
	if err.Details["service_type"] != "*di.Clock" {
		t.Errorf("expected service_type=*di.Clock, got %v", err.Details["service_type"])
	}
	if err.Details["label"] != "utc" {
		t.Errorf("expected label=utc, got %v", err.Details["label"])
	}
	if !strings.Contains(err.Message, `label "utc"`) {
		t.Errorf("expected label in message, got %q", err.Message)
	}
}

func TestAppError_NoProvider_EmptyLabel(t *testing.T) {
	err := NoProvider("string", "")
	if _, ok := err.Details["label"]; ok {
		t.Error("expected no 'label' key in details when label is empty")
	}
	if strings.Contains(err.Message, "label") {
		t.Errorf("expected message without label, got %q", err.Message)
	}
}

func TestAppError_TypeMismatch_Success(t *testing.T) {
	err := TypeMismatch("string", "int", "port")
	if err.Code != ErrCodeTypeMismatch {
		t.Errorf("expected TYPE_MISMATCH, got %s", err.Code)
	}
	if err.Details["produced_type"] != "int" {
		t.Errorf("expected produced_type=int, got %v", err.Details["produced_type"])
	}
	if err.Retryable {
		t.Error("TypeMismatch should not be retryable")
	}
}

func TestAppError_InjectionFailed_Chain(t *testing.T) {
	cause := NoProvider("string", "")
	err := InjectionFailed("string", cause)
	if err.Code != ErrCodeInjectionFailed {
		t.Errorf("expected INJECTION_FAILED, got %s", err.Code)
	}
	if !HasCode(err, ErrCodeInjectionFailed) {
		t.Error("expected HasCode to match the outer code")
	}
	if !stderrors.Is(err, &AppError{Code: ErrCodeNoProvider}) {
		t.Error("expected errors.Is to find the NO_PROVIDER cause")
	}
}

func TestAppError_ScopeNotFound_Success(t *testing.T) {
	err := ScopeNotFound("session")
	if err.Details["scope"] != "session" {
		t.Errorf("expected scope=session, got %v", err.Details["scope"])
	}
}

func TestAppError_InvalidConfig_Success(t *testing.T) {
	err := InvalidConfig("registry.name", "is required")
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", err.Code)
	}
	if err.Details["field"] != "registry.name" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}

	noField := InvalidConfig("", "bad")
	if _, ok := noField.Details["field"]; ok {
		t.Error("expected no field detail when field is empty")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Validation("bad input").WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find cause")
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := NoProvider("string", "")
	err.WithDetails(map[string]any{"extra": "value", "count": 5})
	if err.Details["service_type"] != "string" {
		t.Error("expected original detail to be preserved")
	}
	if err.Details["extra"] != "value" {
		t.Error("expected merged detail 'extra'")
	}
	if err.Details["count"] != 5 {
		t.Error("expected merged detail 'count'")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := Validation("bad")
	err.WithDetail("key", "val")
	if err.Details["key"] != "val" {
		t.Error("expected detail to be set on nil map")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	if err.Error() != "INTERNAL_ERROR: boom" {
		t.Errorf("unexpected format: %q", err.Error())
	}

	withCause := New(ErrCodeInternal, "boom").WithCause(fmt.Errorf("disk"))
	if !strings.Contains(withCause.Error(), "(cause: disk)") {
		t.Errorf("expected cause in message, got %q", withCause.Error())
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	err := fmt.Errorf("outer: %w", TypeMismatch("string", "int", ""))
	if !stderrors.Is(err, &AppError{Code: ErrCodeTypeMismatch}) {
		t.Error("expected code match through wrapping")
	}
	if stderrors.Is(err, &AppError{Code: ErrCodeNoProvider}) {
		t.Error("expected no match for a different code")
	}
}

func TestErrorCode_IsRetryableCode_Table(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeNoProvider, true},
		{ErrCodeTypeMismatch, false},
		{ErrCodeInjectionFailed, false},
		{ErrCodeInvalidConfig, false},
		{ErrCodeInternal, false},
		{ErrorCode("UNKNOWN"), false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			if got := IsRetryableCode(tc.code); got != tc.want {
				t.Errorf("IsRetryableCode(%s) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestAppError_ToResponse_Success(t *testing.T) {
	err := ScopeNotFound("session")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeScopeNotFound {
		t.Errorf("expected SCOPE_NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["scope"] != "session" {
		t.Errorf("expected scope detail, got %v", resp.Error.Details["scope"])
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", Internal(nil))
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError for wrapped AppError")
	}
	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestWrap_NilReturnsNil(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrap_AppErrorPassthrough(t *testing.T) {
	orig := NoProvider("string", "")
	if got := Wrap(orig); got != orig {
		t.Error("Wrap should return the original AppError unchanged")
	}
	if got := Wrap(fmt.Errorf("outer: %w", orig)); got != orig {
		t.Error("Wrap should unwrap to the original AppError")
	}
}

func TestWrap_PlainError(t *testing.T) {
	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}

func TestHasCode_PlainError(t *testing.T) {
	if HasCode(fmt.Errorf("plain"), ErrCodeInternal) {
		t.Error("expected HasCode false for non-AppError")
	}
}
