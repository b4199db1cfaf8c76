package font

import (
	_ "embed"
	"strings"
)

//go:embed tiny.txt
var tinyData string

// Tiny returns the 3x5 font used for the date, weather and stocks sections.
// It panics if the embedded table is malformed.
func Tiny() *Font {
	f, err := Parse(strings.NewReader(tinyData), 1)
	if err != nil {
		panic("font: bad tiny table: " + err.Error())
	}
	// Parse trims lines, so the space glyph cannot live in the file
	_ = f.Add(' ', []string{"00", "00", "00", "00", "00"})
	return f
}
