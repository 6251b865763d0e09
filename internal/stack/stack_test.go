package stack_test

import (
	"testing"

	"go.arcalot.io/assert"
	"go.flow.arcalot.io/subfactory/internal/stack"
)

func TestStack(t *testing.T) {
	stk := stack.New[string]()

	el, ok := stk.Pop()
	assert.Equals(t, ok, false)
	assert.Equals(t, el, "")

	stk.Push("iron-ore", "copper-ore")
	stk.Push("coal")
	assert.Equals(t, stk.Empty(), false)
	assert.Equals(t, stk.Size(), 3)

	for _, expected := range []string{"coal", "copper-ore", "iron-ore"} {
		el, ok = stk.Pop()
		assert.Equals(t, ok, true)
		assert.Equals(t, el, expected)
	}
	assert.Equals(t, stk.Empty(), true)
}

func TestStack_Initial(t *testing.T) {
	stk := stack.New(1, 2, 3)
	assert.Equals(t, stk.Size(), 3)
	top, ok := stk.Pop()
	assert.Equals(t, ok, true)
	assert.Equals(t, top, 3)
}
