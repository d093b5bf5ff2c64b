package service

import (
	"strings"
	"testing"
	"time"
)

func TestCertificateExpiry(t *testing.T) {
	issued := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	expiry := CertificateExpiry(issued)

	want := time.Date(2029, 3, 15, 10, 0, 0, 0, time.UTC)
	if !expiry.Equal(want) {
		t.Fatalf("expiry = %v, want %v", expiry, want)
	}
}

func TestNewCredentialID(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	id := NewCredentialID("Go Fundamentals", issued)
	parts := strings.Split(id, "-")
	if len(parts) != 4 {
		t.Fatalf("credential id %q has %d parts, want 4", id, len(parts))
	}
	if parts[0] != "EC" {
		t.Errorf("prefix = %q, want EC", parts[0])
	}
	if parts[1] != "GOFUND" {
		t.Errorf("course prefix = %q, want GOFUND", parts[1])
	}
	if parts[2] != "2026" {
		t.Errorf("year = %q, want 2026", parts[2])
	}
	if len(parts[3]) != 8 {
		t.Errorf("suffix %q has length %d, want 8", parts[3], len(parts[3]))
	}
}

func TestNewCredentialIDRandomSuffix(t *testing.T) {
	issued := time.Now()
	a := NewCredentialID("Algorithms", issued)
	b := NewCredentialID("Algorithms", issued)
	if a == b {
		t.Fatalf("two generated ids collided: %s", a)
	}
}

func TestCredentialPrefixFallback(t *testing.T) {
	if got := credentialPrefix("123 456"); got != "COURSE" {
		t.Fatalf("prefix = %q, want COURSE for title without letters", got)
	}
	if got := credentialPrefix("データ構造"); got != "COURSE" {
		t.Fatalf("prefix = %q, want COURSE for non-latin title", got)
	}
}
