package handlers

import "testing"

// TestNormalizeName проверяет нормализацию имени пользователя.
func TestNormalizeName(t *testing.T) {
	if normalizeName(nil) != nil {
		t.Fatal("expected nil for nil name")
	}

	empty := "   "
	if normalizeName(&empty) != nil {
		t.Fatal("expected nil for blank name")
	}

	raw := "  Alex  "
	normalized := normalizeName(&raw)
	if normalized == nil || *normalized != "Alex" {
		t.Fatalf("expected Alex, got %v", normalized)
	}
}
