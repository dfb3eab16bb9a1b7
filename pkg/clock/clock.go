// Package clock resolves "today" in the business time zone. Components take a
// Clock instead of reading the wall clock so dates can be pinned in tests.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host
)

const DefaultZone = "Asia/Tokyo"

type Clock interface {
	Now() time.Time
}

type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

type Business struct {
	clk Clock
	loc *time.Location
}

func NewBusiness(clk Clock, loc *time.Location) *Business {
	if clk == nil {
		clk = System{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Business{clk: clk, loc: loc}
}

// LoadBusiness resolves zone by name; an empty name means DefaultZone.
func LoadBusiness(clk Clock, zone string) (*Business, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load zone %q: %w", zone, err)
	}
	return NewBusiness(clk, loc), nil
}

func (b *Business) Location() *time.Location { return b.loc }

func (b *Business) Now() time.Time { return b.clk.Now().In(b.loc) }

// Today is midnight of the current business day.
func (b *Business) Today() time.Time { return b.DateOf(b.clk.Now()) }

// DayWindow returns [today 00:00, tomorrow 00:00) in the business zone.
func (b *Business) DayWindow() (time.Time, time.Time) {
	start := b.Today()
	return start, start.AddDate(0, 0, 1)
}

// DateOf truncates t to midnight of its calendar day in the business zone.
func (b *Business) DateOf(t time.Time) time.Time {
	return DateIn(t, b.loc)
}

// ParseDate reads YYYY-MM-DD as a business-zone date.
func (b *Business) ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, b.loc)
}

func DateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DaysBetween counts calendar days from a to b (negative when b is earlier).
// Both are read as calendar dates in their own location.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
