package ledger

import (
	"sync"
	"time"

	"github.com/rony4d/lvt-ledger/inter"
)

// Clock is the trusted wall-clock source. The processor reads it once per
// instruction, so every record touched by one instruction sees the same now.
type Clock interface {
	Now() inter.Timestamp
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

func (SystemClock) Now() inter.Timestamp {
	return inter.FromUnix(time.Now())
}

// ManualClock only moves when told to.
type ManualClock struct {
	mu  sync.Mutex
	now inter.Timestamp
}

func NewManualClock(start inter.Timestamp) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() inter.Timestamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t inter.Timestamp) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward by d, truncated to whole seconds.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += inter.Timestamp(d / time.Second)
	c.mu.Unlock()
}
