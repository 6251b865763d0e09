package depgraph_test

import (
	"testing"

	"go.arcalot.io/assert"
	"go.flow.arcalot.io/subfactory/depgraph"
)

func TestItemSet(t *testing.T) {
	s := depgraph.NewItemSet("water", "coal", "water")
	assert.Equals(t, s.Len(), 2)
	assert.Equals(t, s.Has("coal"), true)
	assert.Equals(t, s.Sorted(), []depgraph.Item{"coal", "water"})

	c := s.Clone()
	c.Add("steam")
	c.Remove("coal")
	assert.Equals(t, s.Strings(), []string{"coal", "water"})
	assert.Equals(t, c.Strings(), []string{"steam", "water"})
	assert.Equals(t, s.Equals(c), false)
	assert.Equals(t, s.Equals(depgraph.NewItemSet("water", "coal")), true)

	assert.Equals(t, s.ContainsAll(nil), true)
	assert.Equals(t, s.ContainsAll([]depgraph.Item{"coal"}), true)
	assert.Equals(t, s.ContainsAll([]depgraph.Item{"coal", "steam"}), false)
}
