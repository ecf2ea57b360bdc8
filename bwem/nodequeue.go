package bwem

import assert "github.com/arl/assertgo"

// pathNode is a node of a Dijkstra run, either over the tile grid (index
// is a tile index) or over the chokepoint graph (index is a chokepoint
// index).
type pathNode struct {
	Total int32 // cost up to the node
	Index int32
}

// nodeQueue is a binary min-heap of path nodes ordered by Total. Dijkstra
// runs push duplicate entries instead of decreasing keys; stale pops are
// skipped with a marked mask by the callers.
type nodeQueue struct {
	heap []*pathNode
	size int32
}

func newNodeQueue(n int32) *nodeQueue {
	q := &nodeQueue{}

	assert.True(n > 0, "nodeQueue capacity must be > 0")
	q.heap = make([]*pathNode, n+1)

	return q
}

func (q *nodeQueue) bubbleUp(i int32, node *pathNode) {
	parent := (i - 1) / 2
	// note: (index > 0) means there is a parent
	for (i > 0) && (q.heap[parent].Total > node.Total) {
		q.heap[i] = q.heap[parent]
		i = parent
		parent = (i - 1) / 2
	}
	q.heap[i] = node
}

func (q *nodeQueue) trickleDown(i int32, node *pathNode) {
	child := (i * 2) + 1
	for child < q.size {
		if ((child + 1) < q.size) &&
			(q.heap[child].Total > q.heap[child+1].Total) {
			child++
		}
		q.heap[i] = q.heap[child]
		i = child
		child = (i * 2) + 1
	}
	q.bubbleUp(i, node)
}

func (q *nodeQueue) clear() {
	q.size = 0
}

func (q *nodeQueue) top() *pathNode {
	return q.heap[0]
}

func (q *nodeQueue) pop() *pathNode {
	result := q.heap[0]
	q.size--
	q.trickleDown(0, q.heap[q.size])
	return result
}

func (q *nodeQueue) push(node *pathNode) {
	if int(q.size) >= len(q.heap) {
		q.heap = append(q.heap, nil)
	}
	q.size++
	q.bubbleUp(q.size-1, node)
}

func (q *nodeQueue) empty() bool {
	return q.size == 0
}
