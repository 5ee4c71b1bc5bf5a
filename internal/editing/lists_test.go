package editing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoveItem(t *testing.T) {
	list := []string{"A", "B", "C", "D"}

	tests := []struct {
		name     string
		from, to int
		expected []string
	}{
		{name: "2 to 0", from: 2, to: 0, expected: []string{"C", "A", "B", "D"}},
		{name: "0 to 3", from: 0, to: 3, expected: []string{"B", "C", "D", "A"}},
		{name: "1 to 2", from: 1, to: 2, expected: []string{"A", "C", "B", "D"}},
		{name: "same index", from: 1, to: 1, expected: []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, ok := moveItem(list, tt.from, tt.to)
			assert.True(t, ok)
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, []string{"A", "B", "C", "D"}, list, "input must not change")
		})
	}
}

func TestMoveItem_OutOfRange(t *testing.T) {
	list := []int{1, 2, 3}
	for _, c := range [][2]int{{-1, 0}, {0, 3}, {5, 1}} {
		out, ok := moveItem(list, c[0], c[1])
		assert.False(t, ok)
		assert.Equal(t, list, out)
	}
}

func TestRemoveAt(t *testing.T) {
	out, ok := removeAt([]string{"A", "B", "C"}, 1)
	assert.True(t, ok)
	assert.Equal(t, []string{"A", "C"}, out)

	out, ok = removeAt([]string{"only"}, 0)
	assert.True(t, ok)
	assert.Empty(t, out)

	_, ok = removeAt([]string{"A"}, 1)
	assert.False(t, ok)
}

func TestAppendItem_DoesNotShareBackingArray(t *testing.T) {
	base := make([]int, 2, 10)
	a := appendItem(base, 1)
	b := appendItem(base, 2)
	assert.Equal(t, []int{0, 0, 1}, a)
	assert.Equal(t, []int{0, 0, 2}, b)
}

func TestSetAt(t *testing.T) {
	list := []string{"x", "y"}
	out, ok := setAt(list, 1, "z")
	assert.True(t, ok)
	assert.Equal(t, []string{"x", "z"}, out)
	assert.Equal(t, "y", list[1])

	_, ok = setAt(list, 2, "z")
	assert.False(t, ok)
}
