package utils

import (
	"os"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	defer os.Unsetenv("JWT_SECRET")

	token, err := GenerateToken("64b0c0ffee0000000000abcd", "pharmacist")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.ID != "64b0c0ffee0000000000abcd" {
		t.Errorf("claims.ID = %q, want the original id", claims.ID)
	}
	if claims.Role != "pharmacist" {
		t.Errorf("claims.Role = %q, want pharmacist", claims.Role)
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "secret_one")
	token, err := GenerateToken("id", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	os.Setenv("JWT_SECRET", "secret_two")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	defer os.Unsetenv("JWT_SECRET")

	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("garbage token was accepted")
	}
}
