package bbdlz

import (
	"bytes"
	"testing"
)

func TestLCP(t *testing.T) {
	tests := []struct {
		p, q []byte
		n    int
	}{
		{nil, nil, 0},
		{[]byte{1}, nil, 0},
		{[]byte{1, 2, 3}, []byte{1, 2, 3}, 3},
		{[]byte{1, 2, 3}, []byte{1, 2, 4}, 2},
		{[]byte{9, 2, 3}, []byte{1, 2, 3}, 0},
		{bytes.Repeat([]byte{7}, 100), bytes.Repeat([]byte{7}, 64), 64},
		{
			append(bytes.Repeat([]byte{7}, 33), 1),
			append(bytes.Repeat([]byte{7}, 33), 2),
			33,
		},
	}
	for _, tc := range tests {
		if g := lcp(tc.p, tc.q); g != tc.n {
			t.Errorf("lcp(%v, %v) = %d; want %d", tc.p, tc.q, g, tc.n)
		}
		if g := lcp(tc.q, tc.p); g != tc.n {
			t.Errorf("lcp(%v, %v) = %d; want %d", tc.q, tc.p, g, tc.n)
		}
	}
}
