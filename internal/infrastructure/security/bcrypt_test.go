package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

func TestBcryptVerifier_RoundTrip(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)

	hash, err := v.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatalf("expected password to be hashed")
	}

	user := &domain.User{PasswordHash: hash}
	if !v.Verify(user, "s3cret") {
		t.Fatalf("expected correct password to verify")
	}
	if v.Verify(user, "wrong") {
		t.Fatalf("expected wrong password to fail")
	}
}

func TestBcryptVerifier_EmptyHash(t *testing.T) {
	v := NewBcryptVerifier(bcrypt.MinCost)
	if v.Verify(&domain.User{}, "") {
		t.Fatalf("user without a hash must never verify")
	}
	if v.Verify(nil, "x") {
		t.Fatalf("nil user must never verify")
	}
}

func TestNewBcryptVerifier_CostFallback(t *testing.T) {
	if got := NewBcryptVerifier(0).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost, got %d", got)
	}
	if got := NewBcryptVerifier(99).cost; got != bcrypt.DefaultCost {
		t.Fatalf("expected default cost for out of range, got %d", got)
	}
}
