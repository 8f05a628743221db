package dateutil_test

import (
	"testing"

	"unicube-hr/internal/shared/apperror"
	"unicube-hr/internal/shared/dateutil"

	"github.com/stretchr/testify/assert"
)

func TestCanonical(t *testing.T) {
	t.Run("canonical input passes through", func(t *testing.T) {
		got, err := dateutil.Canonical("2024-09-10")
		assert.NoError(t, err)
		assert.Equal(t, "2024-09-10", got)
	})

	t.Run("timestamp truncates to calendar day", func(t *testing.T) {
		got, err := dateutil.Canonical("2024-09-10T14:35:02Z")
		assert.NoError(t, err)
		assert.Equal(t, "2024-09-10", got)

		got, err = dateutil.Canonical("2024-09-10T00:00:00.000Z")
		assert.NoError(t, err)
		assert.Equal(t, "2024-09-10", got)
	})

	t.Run("idempotent for all valid inputs", func(t *testing.T) {
		inputs := []string{"2024-09-10", "2024-12-31T23:59:59Z", "2023-02-28 08:00:00"}
		for _, in := range inputs {
			once, err := dateutil.Canonical(in)
			assert.NoError(t, err)
			twice, err := dateutil.Canonical(once)
			assert.NoError(t, err)
			assert.Equal(t, once, twice, "input %q", in)
		}
	})

	t.Run("unparseable input is a validation error", func(t *testing.T) {
		for _, in := range []string{"not-a-date", "2024-13-45", "10/09/2024", ""} {
			_, err := dateutil.Canonical(in)
			assert.ErrorIs(t, err, dateutil.ErrUnparseableDate, "input %q", in)
		}
	})
}

func TestRange(t *testing.T) {
	collect := func(start, end string) []string {
		var out []string
		for d := range dateutil.Range(start, end) {
			out = append(out, d)
		}
		return out
	}

	t.Run("single day", func(t *testing.T) {
		assert.Equal(t, []string{"2024-09-10"}, collect("2024-09-10", "2024-09-10"))
	})

	t.Run("inclusive multi day", func(t *testing.T) {
		assert.Equal(t,
			[]string{"2024-09-10", "2024-09-11", "2024-09-12"},
			collect("2024-09-10", "2024-09-12"),
		)
	})

	t.Run("crosses month boundary", func(t *testing.T) {
		assert.Equal(t,
			[]string{"2024-08-30", "2024-08-31", "2024-09-01"},
			collect("2024-08-30", "2024-09-01"),
		)
	})

	t.Run("inverted range is empty", func(t *testing.T) {
		assert.Empty(t, collect("2024-09-12", "2024-09-10"))
	})

	t.Run("restartable", func(t *testing.T) {
		seq := dateutil.Range("2024-09-10", "2024-09-12")
		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		assert.Equal(t, 3, first)
		assert.Equal(t, 3, second)
	})

	t.Run("length matches day difference plus one", func(t *testing.T) {
		assert.Len(t, collect("2024-01-01", "2024-01-31"), 31)
		assert.Equal(t, 31, dateutil.DayCount("2024-01-01", "2024-01-31"))
		assert.Equal(t, 0, dateutil.DayCount("2024-01-31", "2024-01-01"))
	})
}

func TestCovers(t *testing.T) {
	assert.True(t, dateutil.Covers("2024-09-10", "2024-09-12", "2024-09-10"))
	assert.True(t, dateutil.Covers("2024-09-10", "2024-09-12", "2024-09-12"))
	assert.False(t, dateutil.Covers("2024-09-10", "2024-09-12", "2024-09-13"))
	assert.False(t, dateutil.Covers("2024-09-10", "2024-09-12", "2024-09-09"))
}

func TestErrUnparseableDateShape(t *testing.T) {
	httpErr := apperror.ToHTTP(dateutil.ErrUnparseableDate)
	assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
	assert.Equal(t, 400, httpErr.Status)
}
