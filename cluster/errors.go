package cluster

import "fmt"

// ErrInvalidInput indicates that the cluster search cannot run with the given seeds.
type ErrInvalidInput struct {
	Reason string
}

func (e ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid cluster search input: %s", e.Reason)
}
