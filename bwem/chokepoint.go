package bwem

import assert "github.com/arl/assertgo"

// Node designates one of the three named positions of a chokepoint.
type Node int

const (
	NodeEnd1 Node = iota
	NodeMiddle
	NodeEnd2
	nodeCount
)

// CPPath is a sequence of chokepoints to traverse in order.
type CPPath []*ChokePoint

// ChokePoint is a frontier between two neighbouring areas: a sequence of
// walk positions in order along the frontier, whose altitude does not
// decrease from either end towards the highest position, with three named
// nodes (the two ends and the middle, reached by a hill-climb on altitude
// from the center of the sequence).
//
// A pseudo chokepoint is synthesized on top of each blocking neutral; its
// geometry is a single position and it starts blocked.
type ChokePoint struct {
	graph *Graph

	index int32
	areas [2]*Area

	geometry []WalkPosition
	nodes    [nodeCount]WalkPosition

	// nodesInArea[n][i] is the walkable minitile of areas[i] nearest to
	// nodes[n], free of any neutral.
	nodesInArea [nodeCount][2]WalkPosition

	blocked         bool
	pseudo          bool
	blockingNeutral *Neutral

	// pathBackTrace is transient state of the chokepoint-graph Dijkstra.
	pathBackTrace *ChokePoint
}

func newChokePoint(g *Graph, index int32, area1, area2 *Area, geometry []WalkPosition, blocking *Neutral) *ChokePoint {
	assert.True(len(geometry) > 0, "newChokePoint: empty geometry")

	cp := &ChokePoint{
		graph:           g,
		index:           index,
		areas:           [2]*Area{area1, area2},
		geometry:        geometry,
		blockingNeutral: blocking,
		blocked:         blocking != nil,
		pseudo:          blocking != nil,
	}
	m := g.m

	// with stacked neutrals, the blocking neutral is the bottom one
	if cp.blockingNeutral != nil {
		cp.blockingNeutral = m.tile(blocking.topLeft).Neutral()
	}

	cp.nodes[NodeEnd1] = geometry[0]
	cp.nodes[NodeEnd2] = geometry[len(geometry)-1]

	// the middle is found by a hill-climb on altitude from the center of
	// the geometry
	i := len(geometry) / 2
	for i > 0 && m.miniTile(geometry[i-1]).Altitude() > m.miniTile(geometry[i]).Altitude() {
		i--
	}
	for i < len(geometry)-1 && m.miniTile(geometry[i+1]).Altitude() > m.miniTile(geometry[i]).Altitude() {
		i++
	}
	cp.nodes[NodeMiddle] = geometry[i]

	for n := NodeEnd1; n < nodeCount; n++ {
		for k, area := range cp.areas {
			id := area.ID()
			cp.nodesInArea[n][k] = m.breadthFirstSearch(cp.nodes[n],
				func(mini *MiniTile, w WalkPosition) bool {
					return mini.AreaID() == id && m.tile(w.Tile()).Neutral() == nil
				},
				func(mini *MiniTile, w WalkPosition) bool {
					return mini.AreaID() == id ||
						(cp.blocked && (mini.Blocked() || m.tile(w.Tile()).Neutral() != nil))
				})
		}
	}
	return cp
}

// Index returns the globally unique index of the chokepoint.
func (cp *ChokePoint) Index() int32 { return cp.index }

// Areas returns the two areas the chokepoint separates.
func (cp *ChokePoint) Areas() [2]*Area { return cp.areas }

// OtherArea returns the area of the pair that is not a.
func (cp *ChokePoint) OtherArea(a *Area) *Area {
	assert.True(a == cp.areas[0] || a == cp.areas[1], "OtherArea: area not part of this chokepoint")
	if cp.areas[0] == a {
		return cp.areas[1]
	}
	return cp.areas[0]
}

// Geometry returns the positions of the frontier, in order along the
// frontier: altitude does not decrease from either end towards the
// highest position.
func (cp *ChokePoint) Geometry() []WalkPosition { return cp.geometry }

// Pos returns the walk position of the given node.
func (cp *ChokePoint) Pos(n Node) WalkPosition { return cp.nodes[n] }

// PosInArea returns the walkable minitile of area a nearest to the given
// node. a must be one of the two areas of the chokepoint.
func (cp *ChokePoint) PosInArea(n Node, a *Area) WalkPosition {
	assert.True(a == cp.areas[0] || a == cp.areas[1], "PosInArea: area not part of this chokepoint")
	if a == cp.areas[0] {
		return cp.nodesInArea[n][0]
	}
	return cp.nodesInArea[n][1]
}

// Center returns the middle node of the chokepoint.
func (cp *ChokePoint) Center() WalkPosition { return cp.nodes[NodeMiddle] }

// Blocked reports whether the chokepoint is currently blocked by a
// neutral.
func (cp *ChokePoint) Blocked() bool { return cp.blocked }

// IsPseudo reports whether the chokepoint was synthesized on top of a
// blocking neutral.
func (cp *ChokePoint) IsPseudo() bool { return cp.pseudo }

// BlockingNeutral returns the bottom neutral of the stack blocking this
// chokepoint, or nil.
func (cp *ChokePoint) BlockingNeutral() *Neutral { return cp.blockingNeutral }

// onBlockingNeutralDestroyed pops the blocking neutral to the next
// stacked one; once none remains, the chokepoint unblocks.
func (cp *ChokePoint) onBlockingNeutralDestroyed(n *Neutral) {
	assert.True(n != nil && n.Blocking(), "onBlockingNeutralDestroyed: neutral not blocking")
	if cp.blockingNeutral != n {
		return
	}
	cp.blockingNeutral = cp.graph.m.tile(n.TopLeft()).Neutral()
	if cp.blockingNeutral == nil {
		cp.blocked = false
	}
}
