package util

import "testing"

func TestHashUserKeyStableAndSafe(t *testing.T) {
	a := HashUserKey("guest:abc/123")
	b := HashUserKey("guest:abc/123")
	if a != b {
		t.Fatalf("expected stable hash, got %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestSanitizeFileName(t *testing.T) {
	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	got, err := SanitizeFileName("a/b\\c.pdf")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "a_b_c.pdf" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
}
