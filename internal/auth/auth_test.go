package auth

import (
	"strings"
	"testing"
	"time"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Password1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if hash == "Password1" {
		t.Fatal("hash equals the plaintext password")
	}
	if !CheckPassword("Password1", hash) {
		t.Error("CheckPassword() rejected the correct password")
	}
	if CheckPassword("Password2", hash) {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestPasswordErrors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErrs int
	}{
		{name: "valid password", password: "Password1", wantErrs: 0},
		{name: "too short", password: "Pass1", wantErrs: 1},
		{name: "no uppercase", password: "password1", wantErrs: 1},
		{name: "no lowercase", password: "PASSWORD1", wantErrs: 1},
		{name: "no digit", password: "Passwords", wantErrs: 1},
		{name: "empty fails all rules", password: "", wantErrs: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := PasswordErrors(tt.password)
			if len(errs) != tt.wantErrs {
				t.Errorf("PasswordErrors(%q) = %d violations %v, want %d", tt.password, len(errs), errs, tt.wantErrs)
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"first.last@sub.example.co.ke", true},
		{"user@example", false},
		{"@example.com", false},
		{"user@", false},
		{"user example@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestGenerateAPIKey(t *testing.T) {
	first, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey() error = %v", err)
	}
	second, err := GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey() error = %v", err)
	}

	if len(first) != 64 {
		t.Errorf("key length = %d, want 64", len(first))
	}
	if first == second {
		t.Error("two generated keys are identical")
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() user id = %d, want 42", userID)
	}
}

func TestTokenIssuer_RejectsTamperedToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	if _, err := issuer.Verify(tampered); err == nil {
		t.Error("Verify() accepted a tampered signature")
	}
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("Verify() accepted a token signed with a different secret")
	}
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)

	issued := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	issuer.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := issuer.Verify(token); err == nil {
		t.Error("Verify() accepted an expired token")
	}

	issuer.now = func() time.Time { return issued.Add(30 * time.Minute) }
	if _, err := issuer.Verify(token); err != nil {
		t.Errorf("Verify() rejected an unexpired token: %v", err)
	}
}
