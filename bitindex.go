package bmp

const bitsPerByte = 8

// bitIndex walks one packed pixel row, yielding palette indexes of nbits bits
// each, most significant bits first. nbits must evenly divide a byte (1, 4 or
// 8), so an index never straddles a byte boundary.
type bitIndex struct {
	bytes    []byte
	size     int // indexes left to produce
	nbits    int
	bitsLeft int // complement width, 8-nbits
	mask     byte
	index    int // cursor position, in bits
}

func newBitIndex(bytes []byte, nbits, size int) *bitIndex {
	bitsLeft := bitsPerByte - nbits
	return &bitIndex{
		bytes:    bytes,
		size:     size,
		nbits:    nbits,
		bitsLeft: bitsLeft,
		mask:     0xff >> bitsLeft,
	}
}

// next extracts the index under the cursor and advances by nbits. ok is false
// once size indexes have been produced or the cursor has run off the end of
// the row. Running off the end terminates quietly rather than failing; rows
// sliced to their full byte length never hit it.
func (b *bitIndex) next() (int, bool) {
	n := b.index / bitsPerByte
	offset := b.bitsLeft - b.index%bitsPerByte

	b.index += b.nbits

	if b.size == 0 {
		return 0, false
	}
	b.size--
	if n >= len(b.bytes) {
		return 0, false
	}
	return int((b.bytes[n] & (b.mask << offset)) >> offset), true
}
