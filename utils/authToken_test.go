package utils

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	os.Setenv("SYMMETRIC_KEY", "0123456789abcdef0123456789abcdef")
	os.Exit(m.Run())
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateAccessToken("42", "Patient", "PT-000007")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != "42" {
		t.Errorf("expected user ID 42, got %s", claims.UserID)
	}
	if claims.Role != "Patient" {
		t.Errorf("expected role Patient, got %s", claims.Role)
	}
	if claims.PatientID != "PT-000007" {
		t.Errorf("expected patient ID PT-000007, got %s", claims.PatientID)
	}
}

func TestValidateTokenRoleCheck(t *testing.T) {
	token, err := GenerateAccessToken("7", "Pharmacist", "")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateToken(token, "Admin", "Pharmacist"); err != nil {
		t.Errorf("expected role to be accepted, got %v", err)
	}
	if _, err := ValidateToken(token, "Patient"); err == nil {
		t.Error("expected role mismatch to be rejected")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not-a-token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestGenerateTokensProducesBoth(t *testing.T) {
	access, refresh, err := GenerateTokens("9", "Doctor", "")
	if err != nil {
		t.Fatalf("failed to generate tokens: %v", err)
	}
	if access == "" || refresh == "" {
		t.Error("expected non-empty access and refresh tokens")
	}
}
