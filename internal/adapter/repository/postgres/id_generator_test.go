package postgres

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestULIDGeneratorMonotonic(t *testing.T) {
	g := NewULIDGenerator()
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	prev := g.Generate()
	for i := 0; i < 100; i++ {
		next := g.Generate()
		if next <= prev {
			t.Fatalf("expected increasing IDs, got %s after %s", next, prev)
		}
		prev = next
	}

	id, err := ulid.Parse(prev)
	if err != nil {
		t.Fatalf("generated ID is not a ULID: %v", err)
	}
	if ulid.Time(id.Time()).UnixMilli() != fixed.UnixMilli() {
		t.Fatalf("expected timestamp %s, got %s", fixed, ulid.Time(id.Time()))
	}
}
