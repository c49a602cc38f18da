package service

import (
	"os"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "jwt-test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	userID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestParseJWTRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "jwt-test-secret")
	InitJWT()

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ParseJWT(tok); err == nil {
			t.Errorf("ParseJWT(%q) accepted", tok)
		}
	}
}
