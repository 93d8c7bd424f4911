package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		retryable bool
	}{
		{CodeValidation, http.StatusBadRequest, false},
		{CodeUnauthorized, http.StatusUnauthorized, false},
		{CodeNotFound, http.StatusNotFound, false},
		{CodeStateConflict, http.StatusUnprocessableEntity, false},
		{CodeDependency, http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("%s: expected retryable=%v", tt.code, tt.retryable)
		}
	}
}

func TestMetadataForUnknownCodeFallsBackToInternal(t *testing.T) {
	meta := MetadataFor(Code("BOGUS"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		code   Code
	}{
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusConflict, CodeConflict},
		{http.StatusUnprocessableEntity, CodeStateConflict},
		{http.StatusBadRequest, CodeValidation},
		{http.StatusTeapot, CodeValidation},
		{http.StatusInternalServerError, CodeDependency},
		{http.StatusBadGateway, CodeDependency},
	}
	for _, tt := range tests {
		if got := FromHTTPStatus(tt.status); got != tt.code {
			t.Fatalf("status %d: expected %s, got %s", tt.status, tt.code, got)
		}
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeDependency, cause, "execute request")

	if !stdErrors.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be findable")
	}
	if As(fmt.Errorf("outer: %w", err)) == nil {
		t.Fatalf("expected typed error through wrapping")
	}
	if !IsCode(err, CodeDependency) {
		t.Fatalf("expected dependency code")
	}
}

func TestDumpBuildsChain(t *testing.T) {
	cause := stdErrors.New("inner")
	err := Wrap(CodeNotFound, cause, "load order")

	d := Dump(err)
	if d.Code != CodeNotFound {
		t.Fatalf("expected code in dump, got %q", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(New(CodeValidation, "cart is empty")); msg != "cart is empty" {
		t.Fatalf("unexpected message %q", msg)
	}
	if msg := UserMessage(stdErrors.New("raw")); msg != "internal server error" {
		t.Fatalf("expected public fallback, got %q", msg)
	}
}
