package utils

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestGenerateReceiptNumber_Format(t *testing.T) {
	t.Setenv("RECEIPT_PREFIX", "")

	num := GenerateReceiptNumber()
	year := time.Now().Year()
	pattern := fmt.Sprintf(`^HRF-%d-\d{11}$`, year)
	if !regexp.MustCompile(pattern).MatchString(num) {
		t.Fatalf("receipt number %q does not match %s", num, pattern)
	}
}

func TestGenerateReceiptNumber_CustomPrefix(t *testing.T) {
	t.Setenv("RECEIPT_PREFIX", "ORG")

	num := GenerateReceiptNumber()
	if num[:4] != "ORG-" {
		t.Fatalf("expected ORG- prefix, got %q", num)
	}
}

func TestGenerateReceiptNumber_NoImmediateRepeat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := GenerateReceiptNumber()
		if seen[n] {
			t.Fatalf("duplicate receipt number generated: %s", n)
		}
		seen[n] = true
	}
}
