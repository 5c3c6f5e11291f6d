package utils

import "testing"

func TestAuthTokenRoundTrip(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, "user", 7)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("NewAuthToken returned empty token")
	}

	uid, role, err := ParseAuthToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if uid != 42 {
		t.Errorf("ParseAuthToken userID = %d, want 42", uid)
	}
	if role != "user" {
		t.Errorf("ParseAuthToken role = %q, want %q", role, "user")
	}
}

func TestParseAuthTokenWrongSecret(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, "user", 7)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	if _, _, err := ParseAuthToken("other-secret", tok.Token); err != ErrInvalidToken {
		t.Errorf("ParseAuthToken with wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAuthTokenExpired(t *testing.T) {
	tok, err := NewAuthToken("secret", 42, "user", -1)
	if err != nil {
		t.Fatalf("NewAuthToken: %v", err)
	}
	if _, _, err := ParseAuthToken("secret", tok.Token); err != ErrInvalidToken {
		t.Errorf("ParseAuthToken with expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestParseAuthTokenGarbage(t *testing.T) {
	if _, _, err := ParseAuthToken("secret", "not-a-jwt"); err != ErrInvalidToken {
		t.Errorf("ParseAuthToken with garbage: err = %v, want ErrInvalidToken", err)
	}
}
