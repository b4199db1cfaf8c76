package font

// Simple 5x7 font for scrolling text.
// Each character is 5 bytes, one per column; bit n is row n, 1 bits are lit.
var font5x7 = map[rune][5]byte{
	'A': {0x7E, 0x09, 0x09, 0x09, 0x7E},
	'B': {0x7F, 0x49, 0x49, 0x49, 0x36},
	'C': {0x3E, 0x41, 0x41, 0x41, 0x22},
	'D': {0x7F, 0x41, 0x41, 0x22, 0x1C},
	'E': {0x7F, 0x49, 0x49, 0x49, 0x41},
	'F': {0x7F, 0x09, 0x09, 0x09, 0x01},
	'G': {0x3E, 0x41, 0x49, 0x49, 0x3A},
	'H': {0x7F, 0x08, 0x08, 0x08, 0x7F},
	'I': {0x00, 0x41, 0x7F, 0x41, 0x00},
	'J': {0x20, 0x40, 0x41, 0x3F, 0x01},
	'K': {0x7F, 0x08, 0x14, 0x22, 0x41},
	'L': {0x7F, 0x40, 0x40, 0x40, 0x40},
	'M': {0x7F, 0x02, 0x0C, 0x02, 0x7F},
	'N': {0x7F, 0x04, 0x08, 0x10, 0x7F},
	'O': {0x3E, 0x41, 0x41, 0x41, 0x3E},
	'P': {0x7F, 0x09, 0x09, 0x09, 0x06},
	'Q': {0x3E, 0x41, 0x51, 0x21, 0x5E},
	'R': {0x7F, 0x09, 0x19, 0x29, 0x46},
	'S': {0x26, 0x49, 0x49, 0x49, 0x32},
	'T': {0x01, 0x01, 0x7F, 0x01, 0x01},
	'U': {0x3F, 0x40, 0x40, 0x40, 0x3F},
	'V': {0x1F, 0x20, 0x40, 0x20, 0x1F},
	'W': {0x3F, 0x40, 0x30, 0x40, 0x3F},
	'X': {0x63, 0x14, 0x08, 0x14, 0x63},
	'Y': {0x07, 0x08, 0x70, 0x08, 0x07},
	'Z': {0x61, 0x51, 0x49, 0x45, 0x43},
	'0': {0x3E, 0x51, 0x49, 0x45, 0x3E},
	'1': {0x00, 0x42, 0x7F, 0x40, 0x00},
	'2': {0x42, 0x61, 0x51, 0x49, 0x46},
	'3': {0x21, 0x41, 0x45, 0x4B, 0x31},
	'4': {0x18, 0x14, 0x12, 0x7F, 0x10},
	'5': {0x27, 0x45, 0x45, 0x45, 0x39},
	'6': {0x3C, 0x4A, 0x49, 0x49, 0x30},
	'7': {0x01, 0x71, 0x09, 0x05, 0x03},
	'8': {0x36, 0x49, 0x49, 0x49, 0x36},
	'9': {0x06, 0x49, 0x49, 0x29, 0x1E},
	' ': {0x00, 0x00, 0x00, 0x00, 0x00},
	'!': {0x00, 0x00, 0x5F, 0x00, 0x00},
	'.': {0x00, 0x60, 0x60, 0x00, 0x00},
	',': {0x00, 0x50, 0x30, 0x00, 0x00},
	':': {0x00, 0x36, 0x36, 0x00, 0x00},
	';': {0x00, 0x56, 0x36, 0x00, 0x00},
	'-': {0x08, 0x08, 0x08, 0x08, 0x08},
	'+': {0x08, 0x08, 0x3E, 0x08, 0x08},
	'?': {0x02, 0x01, 0x51, 0x09, 0x06},
	'\'': {0x00, 0x00, 0x07, 0x00, 0x00},
	'"': {0x00, 0x07, 0x00, 0x07, 0x00},
	'&': {0x36, 0x49, 0x55, 0x22, 0x50},
	'$': {0x24, 0x2A, 0x7F, 0x2A, 0x12},
	'%': {0x23, 0x13, 0x08, 0x64, 0x62},
	'/': {0x20, 0x10, 0x08, 0x04, 0x02},
	'(': {0x00, 0x1C, 0x22, 0x41, 0x00},
	')': {0x00, 0x41, 0x22, 0x1C, 0x00},
	'•': {0x00, 0x1C, 0x1C, 0x1C, 0x00},
	// typographic quotes show up in nearly every feed
	'‘': {0x00, 0x00, 0x07, 0x00, 0x00},
	'’': {0x00, 0x00, 0x07, 0x00, 0x00},
	'“': {0x00, 0x07, 0x00, 0x07, 0x00},
	'”': {0x00, 0x07, 0x00, 0x07, 0x00},
	'—': {0x08, 0x08, 0x08, 0x08, 0x08},
}

const (
	builtinWidth  = 5
	builtinHeight = 7
)

// Builtin returns the 5x7 font with one blank column between glyphs.
// Lower case letters render with their upper case glyphs.
func Builtin() *Font {
	f := New(1)
	f.height = builtinHeight
	for r, cols := range font5x7 {
		g := Glyph{Width: builtinWidth, Height: builtinHeight, bits: make([]bool, builtinWidth*builtinHeight)}
		for x, col := range cols {
			for y := 0; y < builtinHeight; y++ {
				g.bits[y*builtinWidth+x] = col&(1<<y) != 0
			}
		}
		f.glyphs[r] = g
	}
	return f
}
