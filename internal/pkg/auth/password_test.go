package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("passw0rd")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "passw0rd" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword(hash, "passw0rd") {
		t.Fatal("correct password rejected")
	}
	if CheckPassword(hash, "wrongpass") {
		t.Fatal("wrong password accepted")
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	if CheckPassword("not-a-bcrypt-hash", "passw0rd") {
		t.Fatal("invalid hash must not verify")
	}
}
