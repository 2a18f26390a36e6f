package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Abcdef1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "Abcdef1" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !h.Verify("Abcdef1", hash) {
		t.Error("Verify returned false for the original plaintext")
	}
	if h.Verify("Abcdef2", hash) {
		t.Error("Verify returned true for a different plaintext")
	}
}

func TestHashProducesUniqueSalts(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("Abcdef1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("Abcdef1")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same plaintext are identical; salt is not applied")
	}
}

func TestHashRejectsEmptyInput(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	for _, input := range []string{"", "   "} {
		if _, err := h.Hash(input); err != ErrInvalidInput {
			t.Errorf("Hash(%q) error = %v, want ErrInvalidInput", input, err)
		}
	}
}

func TestVerifyFailsClosedOnMalformedHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	if h.Verify("Abcdef1", "not-a-bcrypt-hash") {
		t.Error("Verify returned true for a malformed stored hash")
	}
	if h.Verify("Abcdef1", "") {
		t.Error("Verify returned true for an empty stored hash")
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	h := NewHasher(9999)
	if h.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", h.cost, bcrypt.DefaultCost)
	}
}
