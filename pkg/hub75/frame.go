package hub75

import "image"

// BytesPerColumn is the data for one clock pulse: R1 G1 B1 for the upper
// half of the panel then R2 G2 B2 for the lower half.
const BytesPerColumn = 6

// Frame holds one scan of the panel, one slice per addressable row
type Frame [][]byte

// NewFrame returns an all-off frame
func NewFrame(rows, width int) Frame {
	f := make(Frame, rows)
	for i := range f {
		f[i] = make([]byte, width*BytesPerColumn)
	}
	return f
}

// EncodeFrame converts img to the panel's 1-bit row format. Row r carries
// image row r in its upper bits and image row r+rows in its lower bits. A
// channel is lit when its 8-bit value is at least threshold. Pixels outside
// img are off.
func EncodeFrame(img image.Image, rows, width int, threshold uint8) Frame {
	f := NewFrame(rows, width)
	b := img.Bounds()
	for r := 0; r < rows; r++ {
		row := f[r]
		for x := 0; x < width; x++ {
			idx := x * BytesPerColumn
			encodePixel(row[idx:idx+3], img, b, b.Min.X+x, b.Min.Y+r, threshold)
			encodePixel(row[idx+3:idx+6], img, b, b.Min.X+x, b.Min.Y+r+rows, threshold)
		}
	}
	return f
}

func encodePixel(dst []byte, img image.Image, b image.Rectangle, x, y int, threshold uint8) {
	if !image.Pt(x, y).In(b) {
		return
	}
	r, g, bl, _ := img.At(x, y).RGBA()
	dst[0] = bit(r, threshold)
	dst[1] = bit(g, threshold)
	dst[2] = bit(bl, threshold)
}

func bit(v uint32, threshold uint8) byte {
	if uint8(v>>8) >= threshold {
		return 1
	}
	return 0
}
