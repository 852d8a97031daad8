package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeMetadata(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		expose    bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "invalid request", expose: true, detailsOK: true},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "not found", expose: true},
		{code: CodeSerialization, status: http.StatusUnprocessableEntity, publicMsg: "data could not be decoded", expose: true, detailsOK: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "cart storage unavailable", retryable: true, expose: true, detailsOK: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: "SOMETHING_UNKNOWN", status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
	}

	for _, tt := range tests {
		meta := tt.code.Metadata()
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.ExposeMessage != tt.expose {
			t.Fatalf("code %s expected expose %v got %v", tt.code, tt.expose, meta.ExposeMessage)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "quantity must be positive")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "quantity must be positive" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	base.WithDetails(map[string]any{"field": "quantity"})
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("redis down")
	wrapped := Wrap(CodeDependency, cause, "write cart")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
	if got := wrapped.Error(); got != "DEPENDENCY_ERROR: write cart: redis down" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := fmt.Errorf("lookup: %w", New(CodeNotFound, "product not found"))
	if got := As(err); got == nil || got.Code() != CodeNotFound {
		t.Fatalf("As failed to return typed error")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("IsCode should match wrapped code")
	}
	if IsCode(stdErrors.New("plain"), CodeNotFound) {
		t.Fatalf("IsCode should not match untyped errors")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	err := fmt.Errorf("persist cart: %w", Wrap(CodeDependency, stdErrors.New("disk full"), "write"))
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", dump.Code)
	}
	if len(dump.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if dump.DriverCode != "" {
		t.Fatalf("expected no driver details, got %q", dump.DriverCode)
	}
	if empty := Dump(nil); empty.TopMessage != "" {
		t.Fatalf("expected empty dump for nil error")
	}
}
