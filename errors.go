package subfactory

import "fmt"

// ErrNoGraphFile signals that the graph file was not provided in the context.
var ErrNoGraphFile = fmt.Errorf("no graph file provided in context")

// ErrEmptyGraphFile signals that the graph file contains nothing but whitespace.
var ErrEmptyGraphFile = fmt.Errorf("the graph file is empty")

// ErrUnknownFormat signals that a graph file format is not supported.
type ErrUnknownFormat struct {
	Format GraphFormat
}

func (e ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown graph format: %q (supported: %s, %s)", e.Format, GraphFormatDOT, GraphFormatRecipes)
}

// ErrNoSeeds signals that a cluster search was requested without any seed set.
var ErrNoSeeds = fmt.Errorf("no seed sets provided")
