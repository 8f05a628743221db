// Package dateutil normalizes calendar dates to their canonical YYYY-MM-DD
// form and produces inclusive date ranges. Dates are local-calendar-day
// values, no time of day or timezone survives normalization.
package dateutil

import (
	"iter"
	"net/http"
	"time"

	"unicube-hr/internal/shared/apperror"
)

const Layout = "2006-01-02"

// timestamp layouts accepted besides the canonical one, tried in order
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var ErrUnparseableDate = apperror.New(
	apperror.CodeInvalidInput,
	"invalid date, expected YYYY-MM-DD or a parseable timestamp",
	http.StatusBadRequest,
)

// Canonical normalizes input to YYYY-MM-DD. Timestamps are truncated to
// their calendar day. Unparseable input is a validation error, never a
// silent correction.
func Canonical(input string) (string, error) {
	if _, err := time.Parse(Layout, input); err == nil {
		return input, nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t.Format(Layout), nil
		}
	}
	return "", ErrUnparseableDate
}

// Range yields every canonical date from start to end inclusive, one
// calendar day at a time. The sequence is empty when start > end or when
// either bound is not canonical. Restartable: ranging twice walks the
// dates twice.
func Range(start, end string) iter.Seq[string] {
	return func(yield func(string) bool) {
		from, err := time.Parse(Layout, start)
		if err != nil {
			return
		}
		to, err := time.Parse(Layout, end)
		if err != nil {
			return
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if !yield(d.Format(Layout)) {
				return
			}
		}
	}
}

// DayCount is the inclusive length of the range, 0 when start > end.
func DayCount(start, end string) int {
	from, err := time.Parse(Layout, start)
	if err != nil {
		return 0
	}
	to, err := time.Parse(Layout, end)
	if err != nil {
		return 0
	}
	if from.After(to) {
		return 0
	}
	return int(to.Sub(from).Hours()/24) + 1
}

// Covers reports whether date falls within [start, end]. Canonical strings
// compare correctly as plain strings.
func Covers(start, end, date string) bool {
	return date >= start && date <= end
}
