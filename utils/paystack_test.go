package utils

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func TestValidPaystackSignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"REF123"}}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if !ValidPaystackSignature(secret, body, sig) {
		t.Fatal("expected valid signature to verify")
	}
	if !ValidPaystackSignature(secret, body, " "+sig+" ") {
		t.Fatal("expected signature with surrounding whitespace to verify")
	}
}

func TestValidPaystackSignature_Rejections(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success"}`)

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	sig := hex.EncodeToString(mac.Sum(nil))

	if ValidPaystackSignature(secret, body, "") {
		t.Fatal("empty signature must not verify")
	}
	if ValidPaystackSignature(secret, []byte(`{"event":"charge.failed"}`), sig) {
		t.Fatal("signature over different body must not verify")
	}
	if ValidPaystackSignature("other_secret", body, sig) {
		t.Fatal("signature with wrong secret must not verify")
	}
}
