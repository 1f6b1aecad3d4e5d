package handlers

import "testing"

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"valid", "travel2024", ""},
		{"valid mixed case", "Wander1ust", ""},
		{"too short", "abc1", "Password must be at least 8 characters long"},
		{"exactly seven", "abcde12", "Password must be at least 8 characters long"},
		{"letters only", "wanderlust", "Password must contain both letters and numbers"},
		{"digits only", "12345678", "Password must contain both letters and numbers"},
		{"symbols and digits", "!!!!2024!!!!", "Password must contain both letters and numbers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidatePassword(tc.password); got != tc.wantMsg {
				t.Errorf("ValidatePassword(%q) = %q, want %q", tc.password, got, tc.wantMsg)
			}
		})
	}
}

func TestEmailValidation(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.domain.org",
		"user+tag@example.co",
	}
	invalid := []string{
		"",
		"plainaddress",
		"user @example.com",
		"user@nodot",
		"@example.com",
		"user@",
	}

	for _, email := range valid {
		if !emailRe.MatchString(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if emailRe.MatchString(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestGenerateVerificationToken(t *testing.T) {
	token, err := generateVerificationToken()
	if err != nil {
		t.Fatalf("generateVerificationToken: %v", err)
	}
	if len(token) != 40 {
		t.Errorf("token length = %d, want 40 hex chars", len(token))
	}

	other, err := generateVerificationToken()
	if err != nil {
		t.Fatalf("generateVerificationToken: %v", err)
	}
	if token == other {
		t.Error("two tokens should not collide")
	}
}
