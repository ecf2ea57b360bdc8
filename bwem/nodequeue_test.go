package bwem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeQueueOrdering(t *testing.T) {
	q := newNodeQueue(4)
	assert.True(t, q.empty(), "new queue should be empty")

	totals := []int32{42, 7, 19, 3, 3, 100, 0}
	for i, total := range totals {
		q.push(&pathNode{Total: total, Index: int32(i)})
	}

	want := []int32{0, 3, 3, 7, 19, 42, 100}
	for _, wantTotal := range want {
		assert.False(t, q.empty(), "queue should not be empty")
		assert.Equal(t, wantTotal, q.top().Total, "top should be the minimum")
		assert.Equal(t, wantTotal, q.pop().Total, "pops should come out sorted")
	}
	assert.True(t, q.empty(), "queue should be empty after popping everything")
}

func TestNodeQueueClear(t *testing.T) {
	q := newNodeQueue(8)
	q.push(&pathNode{Total: 5, Index: 0})
	q.push(&pathNode{Total: 1, Index: 1})
	q.clear()
	assert.True(t, q.empty(), "cleared queue should be empty")

	q.push(&pathNode{Total: 9, Index: 2})
	assert.Equal(t, int32(9), q.pop().Total)
}
