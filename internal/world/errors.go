package world

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every *BoundsError.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidValue is matched by every *ValueError.
	ErrInvalidValue = errors.New("value out of range")
)

// BoundsError reports a local coordinate outside the addressed volume.
type BoundsError struct {
	X, Y, Z int
	MaxY    int // exclusive upper bound of Y: 16 for a sub-chunk, 256 for a chunk
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("coordinate (%d,%d,%d) outside [0,16)x[0,%d)x[0,16)", e.X, e.Y, e.Z, e.MaxY)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

// ValueError reports a field value that does not fit its packed width.
type ValueError struct {
	Field string
	Value int
	Max   int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s %d exceeds maximum %d", e.Field, e.Value, e.Max)
}

func (e *ValueError) Is(target error) bool {
	return target == ErrInvalidValue
}

// ErrOutsideWorld is returned for chunk coordinates beyond the world radius.
var ErrOutsideWorld = errors.New("chunk outside world bounds")
