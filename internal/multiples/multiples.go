// Package multiples computes, for a record (a, b, end), the ascending list of
// integers in [1, end] divisible by a or b.
package multiples

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kalevivt/multiple-of-a-and-b/internal/math"
)

const (
	recordFields = 3

	// MaxResultLength is the largest number of multiples Compute will
	// materialise for a single record.
	MaxResultLength = 1 << 26

	preallocLimit = 1 << 16
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrMalformedRecord = errors.New("malformed record")
)

type Record struct {
	A   uint64
	B   uint64
	End uint64
}

// ParseRecord parses a line of the form "a b end". Fields may be separated by
// any amount of whitespace, and each must be a non-negative decimal integer.
func ParseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != recordFields {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedRecord, recordFields, len(fields))
	}

	values := [recordFields]uint64{}
	names := [recordFields]string{"a", "b", "end"}

	for i, field := range fields {
		value, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: field '%s' is not a non-negative integer: %w", ErrMalformedRecord, names[i], err)
		}

		values[i] = value
	}

	return Record{A: values[0], B: values[1], End: values[2]}, nil
}

func (r Record) Multiples() ([]uint64, error) {
	return Compute(r.A, r.B, r.End)
}

func (r Record) String() string {
	return fmt.Sprintf("%d %d %d", r.A, r.B, r.End)
}

// Compute returns every n in [1, end] with n%a == 0 or n%b == 0, in ascending
// order. a and b must both be at least 1, and the result may hold at most
// MaxResultLength numbers.
func Compute(a, b, end uint64) ([]uint64, error) {
	if a == 0 {
		return nil, fmt.Errorf("%w: divisor a must be at least 1", ErrInvalidInput)
	}

	if b == 0 {
		return nil, fmt.Errorf("%w: divisor b must be at least 1", ErrInvalidInput)
	}

	count := Count(a, b, end)
	if count > MaxResultLength {
		return nil, fmt.Errorf("%w: result of %d numbers is too large (limit %d)", ErrInvalidInput, count, MaxResultLength)
	}

	numbers := make([]uint64, 0, min(count, preallocLimit))

	// Walk the multiples of a and b together, so the work is proportional to
	// the size of the result rather than to end.
	nextA, hasA := a, a <= end
	nextB, hasB := b, b <= end

	for hasA || hasB {
		var n uint64

		switch {
		case hasA && hasB:
			n = min(nextA, nextB)
		case hasA:
			n = nextA
		default:
			n = nextB
		}

		numbers = append(numbers, n)

		if hasA && nextA == n {
			nextA, hasA = advance(nextA, a, end)
		}

		if hasB && nextB == n {
			nextB, hasB = advance(nextB, b, end)
		}
	}

	return numbers, nil
}

// advance returns the multiple following n, or false if it would exceed end.
// n must not exceed end.
func advance(n, step, end uint64) (uint64, bool) {
	if step > end-n {
		return 0, false
	}

	return n + step, true
}

// Count returns the number of elements Compute would produce, without
// enumerating them. It returns 0 if either divisor is 0.
func Count(a, b, end uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}

	// May wrap when a and b are both 1, but the subtraction below wraps it back
	// since all arithmetic is modulo 2^64.
	total := end/a + end/b

	lcm, ok := math.LowestCommonMultiple(a, b)
	if ok && lcm <= end {
		total -= end / lcm
	}

	return total
}

// AppendLine appends numbers to dst as space-separated decimals followed by a
// newline.
func AppendLine(dst []byte, numbers []uint64) []byte {
	for i, n := range numbers {
		if i > 0 {
			dst = append(dst, ' ')
		}

		dst = strconv.AppendUint(dst, n, 10)
	}

	return append(dst, '\n')
}
