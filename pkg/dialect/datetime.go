package dialect

import (
	"strings"
	"time"
)

type dateLayout struct {
	layout  string
	hasYear bool
	hasDate bool
}

// dateLayouts are tried in order. Fractional seconds are accepted after any
// seconds field without being spelled out in the layout.
var dateLayouts = []dateLayout{
	{"2006-01-02 15:04:05Z07:00", true, true},
	{"2006-01-02 15:04:05-07", true, true},
	{"2006-01-02 15:04:05 Z07:00", true, true},
	{"2006-01-02 15:04:05 -0700", true, true},
	{"2006-01-02T15:04:05Z07:00", true, true},
	{"2006-01-02T15:04:05-07", true, true},
	{"2006-01-02 15:04:05", true, true},
	{"2006-01-02T15:04:05", true, true},
	{"2006-01-02 15:04", true, true},
	{"2006-01-02T15:04", true, true},
	{"2006-01-02", true, true},
	{"2006/01/02 15:04:05", true, true},
	{"2006/01/02", true, true},
	{"01/02/2006 15:04:05", true, true},
	{"01/02/2006", true, true},
	{"Jan 2 2006 15:04:05", true, true},
	{"Jan 2, 2006 15:04:05", true, true},
	{"Jan 2 2006", true, true},
	{"Jan 2, 2006", true, true},
	{"January 2, 2006", true, true},
	{"2 Jan 2006 15:04:05", true, true},
	{"2 Jan 2006", true, true},
	{"Mon Jan 2 15:04:05 MST 2006", true, true},
	{"2006-01", true, true},
	{"Jan 2 15:04:05", false, true},
	{"Jan 2", false, true},
	{"15:04:05Z07:00", false, false},
	{"15:04:05-07", false, false},
	{"15:04:05", false, false},
	{"15:04", false, false},
	{"3:04:05 PM", false, false},
	{"3:04:05PM", false, false},
	{"3:04 PM", false, false},
	{"3:04PM", false, false},
}

// ParseDateTime parses a free-form date/time string. Zone-less input is read in
// loc; zoned input is converted into loc. A missing year becomes 2000 and a
// missing month or day becomes 1. hasDate reports whether the input named a
// calendar date.
func ParseDateTime(s string, loc *time.Location) (t time.Time, hasDate, ok bool) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false
	}
	for _, l := range dateLayouts {
		parsed, err := time.ParseInLocation(l.layout, s, loc)
		if err != nil {
			continue
		}
		if !l.hasYear {
			parsed = time.Date(2000, parsed.Month(), parsed.Day(),
				parsed.Hour(), parsed.Minute(), parsed.Second(), parsed.Nanosecond(), parsed.Location())
		}
		return parsed.In(loc), l.hasDate, true
	}
	return time.Time{}, false, false
}

// IsMidnight reports whether t is exactly 00:00:00.000000000.
func IsMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
