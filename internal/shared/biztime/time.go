// Package biztime handles the business-timezone boundary for calendar dates.
// All storage and transport are UTC; the business timezone only decides which
// civil date counts as "today" when booking slots and serving banners. The
// implicit local timezone is never used.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone applies when no booking timezone is configured. Banner
// calendars are plain civil dates, so UTC is the neutral default.
const DefaultTimezone = "UTC"

var (
	bizLocation *time.Location
	initOnce    sync.Once
	initErr     error
)

// Init sets the business timezone. Call once at startup.
func Init(tz string) error {
	initOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit sets the business timezone and panics on a bad zone name.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("biztime: invalid timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, auto-initializing to the default
// when Init was never called (tests, one-shot commands).
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: auto-init failed: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns the current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// TodayString returns today's civil date in the business timezone, formatted
// YYYY-MM-DD. This is the reference point for "no past-date booking".
func TodayString() string {
	return time.Now().In(Location()).Format(time.DateOnly)
}

// DateString formats t as a business-timezone civil date.
func DateString(t time.Time) string {
	return t.In(Location()).Format(time.DateOnly)
}

// EndOfDayUTC returns the instant the current business day ends, in UTC.
// Used to bound cache TTLs for per-day ad resolutions.
func EndOfDayUTC(t time.Time) time.Time {
	biz := t.In(Location())
	next := time.Date(biz.Year(), biz.Month(), biz.Day()+1, 0, 0, 0, 0, Location())
	return next.UTC()
}
