package normalize

import (
	"strings"
	"time"
)

// ISODate is the canonical calendar-date layout every record carries after
// normalization.
const ISODate = "2006-01-02"

// dateLayouts are tried in order; the first successful parse wins. RFC3339
// timestamps collapse onto their calendar date.
var dateLayouts = []string{
	ISODate,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
	"01/02/2006",
	"02.01.2006",
}

// ParseDate parses one of the accepted textual date formats and returns the
// ISO calendar date. The second return is false when nothing matched.
func ParseDate(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, trimmed); err == nil {
			return ts.Format(ISODate), true
		}
	}
	return "", false
}
