package client

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"cryosure/internal/models"
)

// DisplayLayout renders reading times as d/m/yyyy, h:mm:ss am|pm.
const DisplayLayout = "2/1/2006, 3:04:05 pm"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp interprets a raw timestamp. Integers, bare or quoted, are
// unix seconds; anything else must be a date-time string. Zone-less strings
// are taken as UTC.
func ParseTimestamp(raw json.RawMessage) (text string, t time.Time, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", time.Time{}, false
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return string(raw), time.Time{}, false
		}
		t, ok := parseTimestampString(s)
		return s, t, ok
	}

	text = string(raw)
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return text, time.Time{}, false
	}
	return text, time.Unix(int64(f), 0).UTC(), true
}

func parseTimestampString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(n, 0).UTC(), true
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t in loc, or models.InvalidTimestamp when ok is false.
func FormatTimestamp(t time.Time, ok bool, loc *time.Location) string {
	if !ok {
		return models.InvalidTimestamp
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DisplayLayout)
}
