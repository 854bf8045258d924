package passwords

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !Verify(hash, "secret123") {
		t.Error("expected Verify to succeed for the right password")
	}
	if Verify(hash, "wrong-password") {
		t.Error("expected Verify to fail for the wrong password")
	}
}

func TestHash_TooShort(t *testing.T) {
	if _, err := Hash("abc"); err != ErrTooShort {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
}

func TestVerify_BadHash(t *testing.T) {
	if Verify("not-a-bcrypt-hash", "whatever") {
		t.Error("expected Verify to fail for a malformed hash")
	}
}
