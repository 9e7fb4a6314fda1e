package bmp

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func collectBitIndexes(b *bitIndex) []int {
	var got []int
	for {
		i, ok := b.next()
		if !ok {
			return got
		}
		got = append(got, i)
	}
}

func TestBitIndex4Bit(t *testing.T) {
	c := qt.New(t)
	got := collectBitIndexes(newBitIndex([]byte{0b10110100}, 4, 2))
	c.Assert(got, qt.DeepEquals, []int{0b1011, 0b0100})
}

func TestBitIndex1Bit(t *testing.T) {
	c := qt.New(t)
	got := collectBitIndexes(newBitIndex([]byte{0b10000000}, 1, 8))
	c.Assert(got, qt.DeepEquals, []int{1, 0, 0, 0, 0, 0, 0, 0})
}

func TestBitIndex8Bit(t *testing.T) {
	c := qt.New(t)
	got := collectBitIndexes(newBitIndex([]byte{0xab, 0x01}, 8, 2))
	c.Assert(got, qt.DeepEquals, []int{0xab, 0x01})
}

// The iterator stops quietly when asked for more indexes than the row holds
// instead of failing; rows sliced to their full byte length never hit this.
func TestBitIndexShortRow(t *testing.T) {
	c := qt.New(t)
	got := collectBitIndexes(newBitIndex([]byte{0xff}, 4, 5))
	c.Assert(got, qt.DeepEquals, []int{0xf, 0xf})
}

func TestBitIndexEmptyRow(t *testing.T) {
	c := qt.New(t)
	c.Assert(collectBitIndexes(newBitIndex(nil, 1, 4)), qt.IsNil)
}
