package pressure

// Point is a normalized position on the foot canvas, both axes in [0,1].
type Point struct {
	X float64
	Y float64
}

// Layout maps sensor ids to their normalized positions on the right
// foot. Left-foot positions are mirrored in X at lookup time. Layouts
// are injectable so alternate insole geometries can be substituted.
type Layout map[int]Point

// DefaultLayout returns the sensor geometry of the 9-sensor insole,
// defined for the right foot.
func DefaultLayout() Layout {
	return Layout{
		1: {0.28, 0.12},
		2: {0.55, 0.15},
		3: {0.62, 0.45},
		4: {0.49, 0.30},
		5: {0.30, 0.40},
		6: {0.53, 0.59},
		7: {0.51, 0.72},
		8: {0.49, 0.85},
		9: {0.34, 0.85},
	}
}

// Position returns the canvas position for a sensor on the given foot.
// The second return is false when the layout has no entry for the id.
func (l Layout) Position(id int, side FootSide) (Point, bool) {
	p, ok := l[id]
	if !ok {
		return Point{}, false
	}
	if side == FootLeft {
		p.X = 1 - p.X
	}
	return p, true
}
