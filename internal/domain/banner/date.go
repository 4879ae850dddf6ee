package banner

import (
	"sort"
	"time"
)

// DateLayout is the wire format for calendar dates: zero-padded YYYY-MM-DD,
// no timezone component. Calendar-membership checks compare these strings
// byte-for-byte, so the format must match exactly.
const DateLayout = time.DateOnly

// Date is a civil calendar date.
type Date string

// ParseDate validates a raw YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", ErrInvalidDate(s)
	}
	// Reject non-canonical spellings that time.Parse tolerates.
	if t.Format(DateLayout) != s {
		return "", ErrInvalidDate(s)
	}
	return Date(s), nil
}

// ParseDates validates a batch, rejecting duplicates within the batch.
func ParseDates(raw []string) ([]Date, error) {
	seen := make(map[string]bool, len(raw))
	dates := make([]Date, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		if seen[s] {
			return nil, ErrDuplicateDate(s)
		}
		seen[s] = true
		dates = append(dates, d)
	}
	return dates, nil
}

func (d Date) String() string {
	return string(d)
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	t, _ := time.Parse(DateLayout, string(d))
	return t
}

// Before compares civil dates. The lexicographic order of the wire format is
// the chronological order.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// DaysBetween counts the days in [from, to], inclusive.
func DaysBetween(from, to Date) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Time().Sub(from.Time())/(24*time.Hour)) + 1
}

// DateRange enumerates every date in [from, to], inclusive, in ascending
// order.
func DateRange(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}
	out := make([]Date, 0, DaysBetween(from, to))
	for t := from.Time(); ; t = t.AddDate(0, 0, 1) {
		d := Date(t.Format(DateLayout))
		out = append(out, d)
		if d == to {
			break
		}
	}
	return out
}

// Schedule is the set of dates a reservation holds, kept sorted and unique.
type Schedule struct {
	dates []Date
}

// NewSchedule builds a schedule from possibly unsorted, possibly duplicated
// dates.
func NewSchedule(dates []Date) Schedule {
	seen := make(map[Date]bool, len(dates))
	uniq := make([]Date, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			uniq = append(uniq, d)
		}
	}
	sort.Slice(uniq, func(i, j int) bool { return uniq[i] < uniq[j] })
	return Schedule{dates: uniq}
}

// ScheduleFromStrings builds a schedule from persisted wire strings.
func ScheduleFromStrings(raw []string) (Schedule, error) {
	dates := make([]Date, 0, len(raw))
	for _, s := range raw {
		d, err := ParseDate(s)
		if err != nil {
			return Schedule{}, err
		}
		dates = append(dates, d)
	}
	return NewSchedule(dates), nil
}

// Contains reports membership.
func (s Schedule) Contains(d Date) bool {
	i := sort.Search(len(s.dates), func(i int) bool { return s.dates[i] >= d })
	return i < len(s.dates) && s.dates[i] == d
}

// Add returns a new schedule with the dates appended.
func (s Schedule) Add(dates []Date) Schedule {
	merged := make([]Date, 0, len(s.dates)+len(dates))
	merged = append(merged, s.dates...)
	merged = append(merged, dates...)
	return NewSchedule(merged)
}

// Len returns the number of held dates.
func (s Schedule) Len() int {
	return len(s.dates)
}

// Dates returns a copy of the held dates in ascending order.
func (s Schedule) Dates() []Date {
	out := make([]Date, len(s.dates))
	copy(out, s.dates)
	return out
}

// Strings returns the wire representation in ascending order.
func (s Schedule) Strings() []string {
	out := make([]string, len(s.dates))
	for i, d := range s.dates {
		out[i] = string(d)
	}
	return out
}
