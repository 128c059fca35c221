package market

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// millisCutoff separates epoch-seconds from epoch-milliseconds. Any numeric
// timestamp above it is read as milliseconds (1e11 seconds is year 5138).
const millisCutoff = 1e11

// isoLayouts are the ISO-8601 shapes accepted for string timestamps.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp coerces a provider timestamp into UTC time. Providers send
// epoch-seconds, epoch-milliseconds, numeric strings of either, or ISO-8601.
func parseTimestamp(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return t.UTC(), true
	case int:
		return epochToTime(float64(t)), true
	case int64:
		return epochToTime(float64(t)), true
	case float64:
		return epochToTime(t), true
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return epochToTime(f), true
		}
		return time.Time{}, false
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(f), true
		}
		for _, layout := range isoLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts.UTC(), true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func epochToTime(epoch float64) time.Time {
	if epoch > millisCutoff {
		epoch /= 1000
	}
	return time.Unix(int64(epoch), 0).UTC()
}

// parsePrice coerces a provider OHLC or volume field into a float64.
func parsePrice(v interface{}) (float64, bool) {
	switch p := v.(type) {
	case nil:
		return 0, false
	case float64:
		return p, true
	case float32:
		return float64(p), true
	case int:
		return float64(p), true
	case int64:
		return float64(p), true
	case json.Number:
		f, err := p.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
