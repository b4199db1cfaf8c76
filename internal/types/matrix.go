package types

import "image"

// Matrix represents a display matrix
type Matrix interface {
	// Clear blanks the matrix
	Clear() error
	// SetImage loads a full frame into the back buffer
	SetImage(img image.Image) error
	// Show pushes the back buffer to the panel
	Show() error
	// Close releases the matrix
	Close() error
}
