package loader

import "fmt"

// ErrInvalidRecipe points at a recipe entry that could not be decoded.
type ErrInvalidRecipe struct {
	Filename string
	Line     int
	Column   int
	Reason   string
}

func (e ErrInvalidRecipe) Error() string {
	return fmt.Sprintf("%s:%d:%d: invalid recipe (%s)", e.Filename, e.Line, e.Column, e.Reason)
}
