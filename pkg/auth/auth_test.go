package auth

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("secreto123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("secreto123", hash) {
		t.Errorf("correct password rejected")
	}
	if CheckPasswordHash("otro", hash) {
		t.Errorf("wrong password accepted")
	}
}

func TestTokenRoundtrip(t *testing.T) {
	token, err := CreateToken("admin")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username admin, got %q", claims.Username)
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Errorf("expected error for malformed token")
	}
}
