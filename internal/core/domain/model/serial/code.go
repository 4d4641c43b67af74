package serial

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"mestrack/internal/pkg/errs"
)

const (
	// baseYear maps to the first supported year letter ('K').
	baseYear = 2025
	// lastYear maps to 'Z', the last letter the format can encode.
	lastYear = baseYear + ('Z' - 'K')

	counterMin = 1
	counterMax = 999
)

var codePattern = regexp.MustCompile(`^([K-Z])([A-L])(\d{3})-(\d{3})M$`)

// Bucket is the coarse allocation period encoded into a serial code: one
// calendar month. Each bucket carries its own 999x999 counter space; a new
// month implicitly resets allocation.
type Bucket struct {
	year  int
	month time.Month
}

// NewBucket creates a Bucket for the given year and month. The format encodes
// years as letters starting at 'K' for 2025, so only 2025..2040 are supported.
func NewBucket(year int, month time.Month) (Bucket, error) {
	if year < baseYear || year > lastYear {
		return Bucket{}, errs.NewValueIsOutOfRangeError("bucket year", year, baseYear, lastYear)
	}
	if month < time.January || month > time.December {
		return Bucket{}, errs.NewValueIsOutOfRangeError("bucket month", int(month), 1, 12)
	}

	return Bucket{year: year, month: month}, nil
}

// BucketFor derives the allocation bucket from a wall-clock instant.
func BucketFor(t time.Time) (Bucket, error) {
	return NewBucket(t.Year(), t.Month())
}

// Year returns the calendar year the bucket covers.
func (b Bucket) Year() int {
	return b.year
}

// Month returns the calendar month the bucket covers.
func (b Bucket) Month() time.Month {
	return b.month
}

// Prefix returns the two-letter bucket prefix, e.g. "KA" for January 2025.
func (b Bucket) Prefix() string {
	return string([]byte{b.yearLetter(), b.monthLetter()})
}

func (b Bucket) yearLetter() byte {
	return byte('K' + b.year - baseYear)
}

func (b Bucket) monthLetter() byte {
	return byte('A' + int(b.month) - 1)
}

// Code is the structured serial number value object, format
// [YEAR][MONTH]###-###M (e.g. KA001-001M for the first serial of January
// 2025). It is immutable; successors are produced by Next.
type Code struct {
	bucket Bucket
	first  int
	second int
}

// FirstCode returns the first code of a bucket's counter space.
func FirstCode(bucket Bucket) Code {
	return Code{bucket: bucket, first: counterMin, second: counterMin}
}

// ParseCode decodes a candidate serial code string. It is pure: callers use
// it to validate external input independent of allocation state. Malformed
// input, including zero counters, fails with ErrInvalidCodeFormat.
func ParseCode(s string) (Code, error) {
	m := codePattern.FindStringSubmatch(s)
	if m == nil {
		return Code{}, fmt.Errorf("%w: %q", ErrInvalidCodeFormat, s)
	}

	bucket, err := NewBucket(baseYear+int(m[1][0]-'K'), time.Month(m[2][0]-'A'+1))
	if err != nil {
		return Code{}, fmt.Errorf("%w: %q", ErrInvalidCodeFormat, s)
	}

	first, _ := strconv.Atoi(m[3])
	second, _ := strconv.Atoi(m[4])
	if first < counterMin || second < counterMin {
		return Code{}, fmt.Errorf("%w: %q", ErrInvalidCodeFormat, s)
	}

	return Code{bucket: bucket, first: first, second: second}, nil
}

// String formats the code as [YEAR][MONTH]###-###M.
func (c Code) String() string {
	return fmt.Sprintf("%s%03d-%03dM", c.bucket.Prefix(), c.first, c.second)
}

// Bucket returns the time bucket the code belongs to.
func (c Code) Bucket() Bucket {
	return c.bucket
}

// First returns the coarse counter field.
func (c Code) First() int {
	return c.first
}

// Second returns the fine counter field.
func (c Code) Second() int {
	return c.second
}

// Next returns the successor code within the same bucket: the second counter
// increments first and rolls over into the first one. Consuming the full
// 999x999 space fails with ErrAllocationExhausted.
func (c Code) Next() (Code, error) {
	next := c
	if next.second < counterMax {
		next.second++
		return next, nil
	}

	next.second = counterMin
	next.first++
	if next.first > counterMax {
		return Code{}, fmt.Errorf("%w %s", ErrAllocationExhausted, c.bucket.Prefix())
	}

	return next, nil
}

// Validate rejects the zero value; a valid Code always comes from FirstCode,
// ParseCode or Next.
func (c Code) Validate() error {
	if c.first < counterMin || c.second < counterMin {
		return errs.NewValueIsRequiredError("code must be created via FirstCode, ParseCode, or Next")
	}
	return nil
}
