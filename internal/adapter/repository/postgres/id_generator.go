package postgres

import (
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. IDs from one generator are
// monotonic within the same millisecond.
type ULIDGenerator struct {
	mu      sync.Mutex
	now     func() time.Time
	entropy io.Reader
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{
		now:     time.Now,
		entropy: ulid.Monotonic(ulid.DefaultEntropy(), 0),
	}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(g.now()), g.entropy).String()
}
