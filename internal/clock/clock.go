package clock

import (
	"math"
	"sync"
	"time"

	"github.com/julianstephens/habitduel/internal/constants"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct {
	Location *time.Location
}

func (c RealClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FakeClock is deterministic and test-friendly.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{t: start}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the clock forward by whole calendar days.
func (c *FakeClock) AdvanceDays(n int) {
	c.mu.Lock()
	c.t = c.t.AddDate(0, 0, n)
	c.mu.Unlock()
}

// Today returns the clock's current date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(constants.DateFormat)
}

// Yesterday returns the date before the clock's current date.
func Yesterday(c Clock) string {
	return c.Now().AddDate(0, 0, -1).Format(constants.DateFormat)
}

// Timestamp returns the clock's current time as RFC3339.
func Timestamp(c Clock) string {
	return c.Now().Format(time.RFC3339)
}

// AddDays shifts a YYYY-MM-DD date by n days. Invalid input is returned unchanged.
func AddDays(date string, n int) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}

// DaysBetween returns the whole number of days from a to b (b - a).
// Both are YYYY-MM-DD dates; ok is false if either fails to parse.
func DaysBetween(a, b string) (int, bool) {
	ta, err := time.Parse(constants.DateFormat, a)
	if err != nil {
		return 0, false
	}
	tb, err := time.Parse(constants.DateFormat, b)
	if err != nil {
		return 0, false
	}
	return int(math.Round(tb.Sub(ta).Hours() / 24)), true
}
