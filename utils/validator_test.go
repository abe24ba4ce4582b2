package utils

import "testing"

type sampleForm struct {
	Name  string `validate:"required,nameok"`
	Email string `validate:"required,email"`
	Phone string `validate:"phone"`
	Kind  string `validate:"oneof=one_time|monthly"`
}

func TestValidateStruct_OK(t *testing.T) {
	f := sampleForm{Name: "Ama Mensah", Email: "ama@example.com", Phone: "+233201234567", Kind: "monthly"}
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidateStruct_Required(t *testing.T) {
	f := sampleForm{Email: "ama@example.com"}
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for missing required field")
	}
}

func TestValidateStruct_Email(t *testing.T) {
	f := sampleForm{Name: "Ama", Email: "not-an-email"}
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for invalid email")
	}
}

func TestValidateStruct_OneOf(t *testing.T) {
	f := sampleForm{Name: "Ama", Email: "ama@example.com", Kind: "weekly"}
	if err := ValidateStruct(&f); err == nil {
		t.Fatal("expected error for value outside oneof set")
	}
}

func TestIsValidEmail(t *testing.T) {
	if !IsValidEmail("a@b.com") {
		t.Fatal("a@b.com should be valid")
	}
	if IsValidEmail("a@b") {
		t.Fatal("a@b should be invalid")
	}
}
