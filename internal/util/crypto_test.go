package util

import "testing"

func TestGenerateNChar(t *testing.T) {
	tests := []int{8, 12, 21}

	for _, n := range tests {
		id, err := GenerateNChar(n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(id) != n {
			t.Errorf("expected id of length %d, got %d (%q)", n, len(id), id)
		}
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("student123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hash == "student123" {
		t.Error("hash must not equal the plain password")
	}
	if !ComparePassword(hash, "student123") {
		t.Error("expected matching password to compare true")
	}
	if ComparePassword(hash, "wrong") {
		t.Error("expected non-matching password to compare false")
	}
}
