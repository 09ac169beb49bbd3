package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGreatestCommonDivisor(t *testing.T) {
	cases := []struct {
		a, b, want uint64
	}{
		{12, 18, 6},
		{18, 12, 6},
		{7, 13, 1},
		{5, 5, 5},
		{0, 9, 9},
		{9, 0, 9},
		{1, 1000, 1},
	}

	for _, c := range cases {
		require.Equal(t, c.want, GreatestCommonDivisor(c.a, c.b), "gcd(%d, %d)", c.a, c.b)
	}
}

func TestLowestCommonMultiple(t *testing.T) {
	lcm, ok := LowestCommonMultiple(4, 6)
	require.True(t, ok)
	require.EqualValues(t, 12, lcm)

	lcm, ok = LowestCommonMultiple(5, 5)
	require.True(t, ok)
	require.EqualValues(t, 5, lcm)

	lcm, ok = LowestCommonMultiple(0, 5)
	require.True(t, ok)
	require.EqualValues(t, 0, lcm)
}

func TestLowestCommonMultiple_Overflow(t *testing.T) {
	// Two large coprimes whose product does not fit in 64 bits
	_, ok := LowestCommonMultiple(1<<32+15, 1<<32+17)
	require.False(t, ok)

	lcm, ok := LowestCommonMultiple(1<<62, 1<<63)
	require.True(t, ok)
	require.EqualValues(t, uint64(1)<<63, lcm)
}
