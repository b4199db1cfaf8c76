package headlines

// Block is the run of strip columns contributed by one batch of headlines.
// The range is half-open: [Start, End).
type Block struct {
	Start     int
	End       int
	Headlines int
}

// Width is the number of columns in the block
func (b Block) Width() int {
	return b.End - b.Start
}

// shift moves the block left by n columns
func (b Block) shift(n int) Block {
	return Block{Start: b.Start - n, End: b.End - n, Headlines: b.Headlines}
}
