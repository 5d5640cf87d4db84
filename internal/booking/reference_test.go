package booking

import (
	"strings"
	"testing"
	"time"
)

func TestNewReference(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	ref := NewReference(now)

	if !strings.HasPrefix(ref, "BPC-") {
		t.Errorf("expected BPC- prefix, got %s", ref)
	}
	parts := strings.Split(ref, "-")
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d: %s", len(parts), ref)
	}
	if parts[1] != "1773480413000" {
		t.Errorf("expected millisecond timestamp 1773480413000, got %s", parts[1])
	}
	if len(parts[2]) != 8 {
		t.Errorf("expected 8-char suffix, got %q", parts[2])
	}
}

func TestNewReferenceUnique(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		ref := NewReference(now)
		if seen[ref] {
			t.Fatalf("duplicate reference generated: %s", ref)
		}
		seen[ref] = true
	}
}
