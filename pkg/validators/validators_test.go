package validators

import (
	"testing"

	pkgerrors "github.com/cafeorder/cafe-client/pkg/errors"
)

type joinBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=20"`
	Name     string `json:"name" validate:"required,min=2,max=30"`
}

func TestStructAcceptsValidBody(t *testing.T) {
	body := joinBody{Email: "user@cafe.test", Password: "secret-123", Name: "Jay"}
	if err := Struct(body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructRejectsInvalidBody(t *testing.T) {
	body := joinBody{Email: "not-an-email", Password: "short", Name: "J"}
	err := Struct(body)
	if err == nil {
		t.Fatal("expected validation error")
	}

	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	for _, field := range []string{"email", "password", "name"} {
		if _, present := details[field]; !present {
			t.Fatalf("expected detail for %q, got %v", field, details)
		}
	}
}
