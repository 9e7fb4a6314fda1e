package bmp

import "fmt"

// ErrorKind identifies the validation that rejected a buffer.
type ErrorKind int

const (
	// WrongMagicNumbers means the buffer does not start with "BM".
	WrongMagicNumbers ErrorKind = iota + 1
	// UnsupportedBitsPerPixel means a bit depth other than 1, 4, 8 or 24.
	UnsupportedBitsPerPixel
	// UnsupportedCompressionType means a compression code other than 0.
	// RLE-8, RLE-4 and bitfields encodings are recognized but not decoded.
	UnsupportedCompressionType
	// UnsupportedBmpVersion means the header size maps to a known BMP
	// version (V2, V3-NT) that this decoder does not implement.
	UnsupportedBmpVersion
	// UnsupportedHeader means the header size maps to no known BMP version.
	UnsupportedHeader
)

func (k ErrorKind) String() string {
	switch k {
	case WrongMagicNumbers:
		return "wrong magic numbers"
	case UnsupportedBitsPerPixel:
		return "unsupported bits per pixel"
	case UnsupportedCompressionType:
		return "unsupported compression type"
	case UnsupportedBmpVersion:
		return "unsupported BMP version"
	case UnsupportedHeader:
		return "unsupported header"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// DecodeError reports why a buffer was rejected. Kind selects the failed
// check; Observed carries the offending header value so callers can act on
// it without parsing strings: the two signature bytes for WrongMagicNumbers,
// the bit depth for UnsupportedBitsPerPixel, the compression code for
// UnsupportedCompressionType, and the DIB header size for
// UnsupportedBmpVersion and UnsupportedHeader.
type DecodeError struct {
	Kind     ErrorKind
	Observed uint32
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case WrongMagicNumbers:
		got := string([]byte{byte(e.Observed), byte(e.Observed >> 8)})
		return fmt.Sprintf("bmp: wrong magic numbers: got %q, want %q", got, "BM")
	case UnsupportedBitsPerPixel:
		return fmt.Sprintf("bmp: unsupported bits per pixel: %d (want 1, 4, 8 or 24)", e.Observed)
	case UnsupportedCompressionType:
		return fmt.Sprintf("bmp: unsupported compression type: %s", compression(e.Observed))
	case UnsupportedBmpVersion:
		v := version3NT
		if e.Observed == 12 {
			v = version2
		}
		return fmt.Sprintf("bmp: unsupported BMP version: %s", v)
	case UnsupportedHeader:
		return fmt.Sprintf("bmp: unsupported DIB header size: %d", e.Observed)
	}
	return "bmp: " + e.Kind.String()
}
