package depgraph

import (
	"errors"
	"fmt"
)

// ErrEmptyItemName indicates that a recipe or item was registered without a name.
var ErrEmptyItemName = errors.New("item name must not be empty")

// ErrGraphHasCycles is returned by Build if cycles are rejected and the recipes form at least one cycle.
var ErrGraphHasCycles = errors.New("the recipe dependency graph has at least one cycle")

// ErrInvalidRecipe describes a recipe the builder refused to accept.
type ErrInvalidRecipe struct {
	Product Item
	Cause   error
}

func (e ErrInvalidRecipe) Error() string {
	return fmt.Sprintf("invalid recipe for %q (%v)", e.Product, e.Cause)
}

func (e ErrInvalidRecipe) Unwrap() error {
	return e.Cause
}
