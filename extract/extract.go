// Package extract builds the image payload exchanged between the decoding
// guest and the host harness: a plain width/height/pixel-rows structure that
// serializes identically on both sides.
package extract

import "github.com/ChickenLover/bmp"

// ImageData is the wire form of a decoded image. Pixels holds one slice per
// row, top row first, each sample packed 0xRRGGBB.
type ImageData struct {
	Width  uint32     `json:"width"`
	Height uint32     `json:"height"`
	Pixels [][]uint32 `json:"pixels"`
}

// FromImage flattens img into its wire form.
func FromImage(img *bmp.Image) ImageData {
	data := ImageData{
		Width:  img.Width(),
		Height: img.Height(),
		Pixels: make([][]uint32, 0, img.Height()),
	}
	for y := uint32(0); y < data.Height; y++ {
		row := make([]uint32, data.Width)
		for x := uint32(0); x < data.Width; x++ {
			p := img.GetPixel(x, y)
			row[x] = uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
		}
		data.Pixels = append(data.Pixels, row)
	}
	return data
}
