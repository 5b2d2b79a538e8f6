package http

import (
	"errors"
	"testing"
)

func TestApprovalActionValidation(t *testing.T) {
	type P struct {
		Action string `validate:"required,approvalaction"`
	}
	cv := NewValidator()

	for _, s := range []string{"APPROVE", "REJECT"} {
		if err := cv.Validate(P{Action: s}); err != nil {
			t.Fatalf("expected %q to pass, got %v", s, err)
		}
	}

	// case normalization happens in the handler, so lowercase must fail here
	for _, s := range []string{"approve", "reject", "MAYBE", "APPROVED"} {
		err := cv.Validate(P{Action: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Action", "must be APPROVE or REJECT") {
			t.Fatalf("expected approvalaction message for %q, got %+v", s, fe)
		}
	}

	// empty trips required before approvalaction
	fe := ToFieldErrors(cv.Validate(P{}))
	if !containsFieldMsg(fe, "Action", "is required") {
		t.Fatalf("expected required message, got %+v", fe)
	}
}

func TestFieldErrorMessages(t *testing.T) {
	type P struct {
		Username string `validate:"required,min=3,max=100"`
		Email    string `validate:"required,email"`
		Role     string `validate:"omitempty,oneof=admin operator viewer"`
		Password string `validate:"required,min=8"`
	}
	cv := NewValidator()

	err := cv.Validate(P{
		Username: "ab",         // min=3
		Email:    "not-an-email",
		Role:     "superuser",  // oneof
		Password: "",           // required
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Username", "at least 3 characters") {
		t.Fatalf("missing min message for Username: %+v", fe)
	}
	if !containsFieldMsg(fe, "Email", "valid email") {
		t.Fatalf("missing email message: %+v", fe)
	}
	if !containsFieldMsg(fe, "Role", "must be one of admin operator viewer") {
		t.Fatalf("missing oneof message: %+v", fe)
	}
	if !containsFieldMsg(fe, "Password", "is required") {
		t.Fatalf("missing required message: %+v", fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 {
		t.Fatalf("expected 1 field error, got %d", len(fe))
	}
	if fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected mapping: %+v", fe[0])
	}
}
