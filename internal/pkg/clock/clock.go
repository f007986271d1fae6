package clock

import (
	"sync"
	"time"
)

// ISTOffset is the fixed Indian Standard Time shift. No timezone database is consulted.
const ISTOffset = 5*time.Hour + 30*time.Minute

const (
	DateLayout     = "2006-01-02"
	MonthLayout    = "2006-01"
	DateTimeLayout = "2006-01-02T15:04:05"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time in UTC.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

// IST returns the IST wall clock for t. The result keeps the UTC location so
// its Hour/Minute/Format read as IST.
func IST(t time.Time) time.Time {
	return t.UTC().Add(ISTOffset)
}

// ISTDate returns the YYYY-MM-DD calendar day of t in IST.
func ISTDate(t time.Time) string {
	return IST(t).Format(DateLayout)
}

// ISTMidnight returns the start of t's IST calendar day on the shifted clock.
func ISTMidnight(t time.Time) time.Time {
	ist := IST(t)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, time.UTC)
}

// StubClock returns a fixed time. Safe for concurrent use.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewStubClock creates a StubClock set to the given time.
func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *StubClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
