package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexCompare(t *testing.T) {
	var c1 complex128 = complex(1.0, 2.0) // 1.0+2.0i
	var c2 complex128 = complex(1.1, 2.0) // 1.1+2.0i
	_c1 := math.Hypot(real(c1), imag(c1))
	_c2 := math.Hypot(real(c2), imag(c2))
	assert.Greater(t, _c2, _c1)
}

func TestCompare(t *testing.T) {
	testcases := []struct {
		name     string
		i, j     float64
		expected int64
	}{
		{"equal", 1.5, 1.5, 0},
		{"less", -1, 2, -1},
		{"greater", 3, 2.5, 1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, Compare(tc.i, tc.j))
			require.Equal(tt, -tc.expected, Reverse[float64](Compare[float64])(tc.i, tc.j))
		})
	}
	require.Equal(t, int64(-1), Compare("abc", "abd"))
}
