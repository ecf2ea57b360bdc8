package bwem

import (
	"math"
	"sort"
)

type altitudeDelta struct {
	d        WalkPosition
	altitude Altitude
}

type activeSeaSide struct {
	origin                WalkPosition
	lastAltitudeGenerated Altitude
}

// seaSide reports whether w is a sea minitile on the border of its sea:
// the 4-neighbourhood contains a non-sea minitile.
func (m *Map) seaSide(w WalkPosition) bool {
	if !m.miniTile(w).Sea() {
		return false
	}
	for _, delta := range walkDeltas4 {
		n := w.Add(delta)
		if m.ValidWalk(n) && !m.miniTile(n).Sea() {
			return true
		}
	}
	return false
}

// computeAltitude assigns to every non-sea minitile its pixel distance to
// the nearest sea minitile, expanding simultaneously from all the seaside
// seeds in increasing distance.
//
// The delta table is sorted with a stable sort and its weights are rounded
// half away from zero: both fix the order in which equal-distance
// minitiles receive an altitude, which feeds directly into the area
// frontiers. Do not change either.
func (m *Map) computeAltitude() {
	// Precompute the list of deltas and their altitude, sorted by
	// increasing altitude. Only one half-quadrant is generated: the 8
	// symmetric reflections of each delta are probed at use site.
	r := iMax32(m.walkSize.X, m.walkSize.Y)/2 + 3
	var deltas []altitudeDelta
	for dy := int32(0); dy <= r; dy++ {
		for dx := dy; dx <= r; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			// float64: dx*dx+dy*dy exceeds float32 exact-int range on
			// large maps
			w := Altitude(0.5 + math.Sqrt(float64(dx*dx+dy*dy))*altitudeScale)
			deltas = append(deltas, altitudeDelta{WalkPosition{dx, dy}, w})
		}
	}
	sort.SliceStable(deltas, func(i, j int) bool { return deltas[i].altitude < deltas[j].altitude })

	// The seeds: the seaside minitiles, plus a virtual ring one minitile
	// outside the map. Seeding from the sea side keeps the altitudes
	// equal to the pixel distance to the nearest sea minitile.
	var seeds []activeSeaSide
	for y := int32(-1); y <= m.walkSize.Y; y++ {
		for x := int32(-1); x <= m.walkSize.X; x++ {
			w := WalkPosition{x, y}
			if !m.ValidWalk(w) || m.seaSide(w) {
				seeds = append(seeds, activeSeaSide{w, 0})
			}
		}
	}

	for _, da := range deltas {
		if len(seeds) == 0 {
			break
		}
		for i := 0; i < len(seeds); i++ {
			seed := &seeds[i]

			// a seed that did not assign anything in the last two
			// altitude units cannot assign anything anymore
			if int32(da.altitude)-int32(seed.lastAltitudeGenerated) >= 2*altitudeScale {
				seeds[i] = seeds[len(seeds)-1]
				seeds = seeds[:len(seeds)-1]
				i--
				continue
			}

			for _, delta := range [8]WalkPosition{
				{da.d.X, da.d.Y}, {-da.d.X, da.d.Y}, {da.d.X, -da.d.Y}, {-da.d.X, -da.d.Y},
				{da.d.Y, da.d.X}, {-da.d.Y, da.d.X}, {da.d.Y, -da.d.X}, {-da.d.Y, -da.d.X},
			} {
				w := seed.origin.Add(delta)
				if !m.ValidWalk(w) {
					continue
				}
				mini := m.miniTile(w)
				if mini.altitudeMissing() {
					mini.setAltitude(da.altitude)
					m.maxAltitude = da.altitude
					seed.lastAltitudeGenerated = da.altitude
				}
			}
		}
	}

	m.setMinAltitudeInTiles()
}
