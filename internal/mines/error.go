package mines

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("coordinates out of bounds")
	ErrNoGame      = errors.New("no game in progress")
)

type OutOfBoundsError struct {
	Point
	Width, Height int
}

// [OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"cell %s is outside the %dx%d board", e.Point, e.Width, e.Height,
	)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
