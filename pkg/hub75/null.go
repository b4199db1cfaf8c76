package hub75

import (
	"image"
	"image/draw"
	"sync"
)

// Null is a matrix with no hardware behind it. It keeps the last image so
// headless runs and tests can inspect output.
type Null struct {
	mu    sync.Mutex
	last  *image.RGBA
	shows int
}

// NewNull returns an empty null matrix
func NewNull() *Null {
	return &Null{}
}

// SetImage copies img
func (n *Null) SetImage(img image.Image) error {
	cp := image.NewRGBA(img.Bounds())
	draw.Draw(cp, cp.Bounds(), img, img.Bounds().Min, draw.Src)
	n.mu.Lock()
	n.last = cp
	n.mu.Unlock()
	return nil
}

// Clear forgets the last image
func (n *Null) Clear() error {
	n.mu.Lock()
	n.last = nil
	n.mu.Unlock()
	return nil
}

// Show counts a refresh
func (n *Null) Show() error {
	n.mu.Lock()
	n.shows++
	n.mu.Unlock()
	return nil
}

// Close does nothing
func (n *Null) Close() error { return nil }

// Last returns the most recent image, or nil
func (n *Null) Last() *image.RGBA {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

// Shows returns how many times Show was called
func (n *Null) Shows() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shows
}
