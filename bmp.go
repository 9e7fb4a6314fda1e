// Package bmp decodes uncompressed BMP images from in-memory byte buffers
// into a randomly addressable pixel grid.
//
// Supported are BITMAPINFOHEADER-family files (DIB header sizes 40, 108 and
// 124) at 1, 4, 8 or 24 bits per pixel. Compressed variants (RLE-8, RLE-4,
// bitfields), the V3-NT layout and the ancient V2 core header are recognized
// and rejected with a typed *DecodeError.
//
// Images are addressed in row-major order from the top: (0, 0) is the upper
// left corner.
package bmp

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
)

// Pixel is one image sample with 8-bit red, green and blue channels.
type Pixel struct {
	R, G, B uint8
}

// Image is a decoded or newly constructed BMP image.
//
// Pixels are stored in a flat slice of length width*height, bottom row first
// to match the on-disk row order. The accessors translate from top-down
// coordinates, so callers never see the storage order.
type Image struct {
	header    header
	dibHeader dibHeader
	palette   []Pixel
	width     uint32
	height    uint32
	padding   uint32
	data      []Pixel
}

// New returns an all-black image of the given dimensions, carrying a default
// 24-bit uncompressed header.
func New(width, height uint32) *Image {
	headerSize, dataSize := fileSize(24, width, height)
	return &Image{
		header:    newHeader(headerSize, dataSize),
		dibHeader: newDIBHeader(int32(width), int32(height)),
		width:     width,
		height:    height,
		padding:   width % 4,
		data:      make([]Pixel, width*height),
	}
}

// Decode reads a BMP image from r. The whole stream is read into memory
// first; decoding itself is a pure function over the buffer.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("bmp: reading data: %w", err)
	}
	return FromBytes(data)
}

// Open reads and decodes the BMP file at path.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromBytes(data)
}

// Width returns the image width in pixels.
func (i *Image) Width() uint32 {
	return i.width
}

// Height returns the image height in pixels.
func (i *Image) Height() uint32 {
	return i.height
}

// GetPixel returns the pixel at (x, y). The coordinate must lie within
// [0, Width()) x [0, Height()); coordinates outside the image are a caller
// bug and are not validated.
func (i *Image) GetPixel(x, y uint32) Pixel {
	return i.data[(i.height-y-1)*i.width+x]
}

// SetPixel sets the pixel at (x, y). The same coordinate contract as
// GetPixel applies.
func (i *Image) SetPixel(x, y uint32, val Pixel) {
	i.data[(i.height-y-1)*i.width+x] = val
}

// Coordinates returns an iterator over every (x, y) of the image in
// row-major order starting at (0, 0).
func (i *Image) Coordinates() *ImageIndex {
	return &ImageIndex{width: i.width, height: i.height}
}

// ToImage converts the image to a stdlib *image.NRGBA with opaque alpha, for
// interoperability with the image ecosystem.
func (i *Image) ToImage() *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, int(i.width), int(i.height)))
	for it := i.Coordinates(); ; {
		x, y, ok := it.Next()
		if !ok {
			break
		}
		p := i.GetPixel(x, y)
		m.SetNRGBA(int(x), int(y), color.NRGBA{R: p.R, G: p.G, B: p.B, A: 0xff})
	}
	return m
}

// ImageIndex iterates over image coordinates from the upper left corner.
type ImageIndex struct {
	width, height uint32
	x, y          uint32
}

// Next returns the next coordinate pair. ok is false once all width*height
// pairs have been produced.
func (ix *ImageIndex) Next() (x, y uint32, ok bool) {
	if ix.x >= ix.width || ix.y >= ix.height {
		return 0, 0, false
	}
	x, y = ix.x, ix.y
	ix.x++
	if ix.x == ix.width {
		ix.x = 0
		ix.y++
	}
	return x, y, true
}

// fileSize returns the total header size and the pixel array size for an
// uncompressed image with each row padded out to a 4-byte boundary.
func fileSize(bpp, width, height uint32) (headerSize, dataSize uint32) {
	return 2 + 12 + 40, height * rowSize(int32(bpp), int32(width))
}
