package serial_test

import (
	"testing"
	"time"

	"mestrack/internal/core/domain/model/serial"
	"mestrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBucket(t *testing.T, year int, month time.Month) serial.Bucket {
	t.Helper()
	b, err := serial.NewBucket(year, month)
	require.NoError(t, err)
	return b
}

func TestNewBucket(t *testing.T) {
	t.Run("maps year and month to letters", func(t *testing.T) {
		tests := []struct {
			year   int
			month  time.Month
			prefix string
		}{
			{2025, time.January, "KA"},
			{2025, time.December, "KL"},
			{2026, time.February, "LB"},
			{2040, time.June, "ZF"},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.prefix, mustBucket(t, tt.year, tt.month).Prefix())
		}
	})

	t.Run("rejects years outside the letter range", func(t *testing.T) {
		_, err := serial.NewBucket(2024, time.March)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = serial.NewBucket(2041, time.March)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("derives from wall clock", func(t *testing.T) {
		b, err := serial.BucketFor(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "LC", b.Prefix())
	})
}

func TestFirstCode(t *testing.T) {
	code := serial.FirstCode(mustBucket(t, 2025, time.January))

	assert.Equal(t, "KA001-001M", code.String())
	require.NoError(t, code.Validate())
}

func TestParseCode(t *testing.T) {
	t.Run("round-trips bucket and counters", func(t *testing.T) {
		code, err := serial.ParseCode("LC042-317M")

		require.NoError(t, err)
		assert.Equal(t, 2026, code.Bucket().Year())
		assert.Equal(t, time.March, code.Bucket().Month())
		assert.Equal(t, 42, code.First())
		assert.Equal(t, 317, code.Second())
		assert.Equal(t, "LC042-317M", code.String())
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, input := range []string{
			"",
			"KA001-001",   // missing suffix
			"KA001001M",   // missing separator
			"AA001-001M",  // year letter below range
			"KM001-001M",  // month letter above range
			"KA1-1M",      // unpadded counters
			"KA000-001M",  // zero counter
			"KA001-000M",  // zero counter
			"ka001-001m",  // lower case
			"KA001-001MX", // trailing garbage
		} {
			_, err := serial.ParseCode(input)
			assert.ErrorIs(t, err, serial.ErrInvalidCodeFormat, "input %q", input)
		}
	})

	t.Run("parse after format is the identity", func(t *testing.T) {
		original := serial.FirstCode(mustBucket(t, 2027, time.October))
		parsed, err := serial.ParseCode(original.String())

		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})
}

func TestCodeNext(t *testing.T) {
	t.Run("increments the second counter", func(t *testing.T) {
		code := serial.FirstCode(mustBucket(t, 2025, time.January))

		next, err := code.Next()

		require.NoError(t, err)
		assert.Equal(t, "KA001-002M", next.String())
	})

	t.Run("rolls over into the first counter", func(t *testing.T) {
		code, err := serial.ParseCode("KA007-999M")
		require.NoError(t, err)

		next, err := code.Next()

		require.NoError(t, err)
		assert.Equal(t, "KA008-001M", next.String())
	})

	t.Run("fails when the bucket space is exhausted", func(t *testing.T) {
		code, err := serial.ParseCode("KA999-999M")
		require.NoError(t, err)

		_, err = code.Next()

		require.ErrorIs(t, err, serial.ErrAllocationExhausted)
	})

	t.Run("successive codes are strictly increasing", func(t *testing.T) {
		code := serial.FirstCode(mustBucket(t, 2025, time.February))
		prev := code.String()
		for range 2500 {
			next, err := code.Next()
			require.NoError(t, err)
			assert.Greater(t, next.String(), prev)
			prev = next.String()
			code = next
		}
	})
}

func TestCodeValidate(t *testing.T) {
	var zero serial.Code

	require.Error(t, zero.Validate())
}
