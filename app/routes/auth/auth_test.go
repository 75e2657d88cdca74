package auth

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPasswordHash("admin123", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	guard := NewGuard("test-secret")

	token, err := guard.GenerateToken(7, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := guard.ValidateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != 7 || claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v, want user 7 admin/admin", claims)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewGuard("secret-a").GenerateToken(1, "teacher", "teacher")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewGuard("secret-b").ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestTokenRejectsGarbage(t *testing.T) {
	if _, err := NewGuard("secret").ValidateToken("not-a-token"); err == nil {
		t.Error("malformed token accepted")
	}
}
