package softbody

import "math"

// Templates construct the initial point/stick layouts for each object
// kind. Rest lengths are taken from the spawn-time distances.

// NewCloth builds a cols×rows grid with the top row pinned. Structural
// sticks connect horizontal and vertical neighbours.
func NewCloth(x, y float64, cols, rows int, spacing float64) *Object {
	o := &Object{Kind: KindCloth}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			p := NewPoint(x+float64(c)*spacing, y+float64(r)*spacing)
			p.Pinned = r == 0
			p.U = float64(c) / float64(cols-1)
			p.V = float64(r) / float64(rows-1)
			o.Points = append(o.Points, p)
		}
	}

	idx := func(c, r int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				o.Link(idx(c-1, r), idx(c, r), true)
			}
			if r > 0 {
				o.Link(idx(c, r-1), idx(c, r), true)
			}
		}
	}
	return o
}

// NewRope builds a vertical chain of n points with the top point pinned.
func NewRope(x, y float64, n int, spacing float64) *Object {
	o := &Object{Kind: KindRope}

	for i := 0; i < n; i++ {
		p := NewPoint(x, y+float64(i)*spacing)
		p.Pinned = i == 0
		p.V = float64(i) / float64(n-1)
		o.Points = append(o.Points, p)
	}
	for i := 1; i < n; i++ {
		o.Link(i-1, i, true)
	}
	return o
}

// NewBlob builds a ring of n points around a free center, with rim and
// spoke sticks so the body holds its round shape while staying squishy.
func NewBlob(x, y float64, n int, radius float64) *Object {
	o := &Object{Kind: KindBlob}

	center := NewPoint(x, y)
	center.Radius = 3
	o.Points = append(o.Points, center)

	for i := 0; i < n; i++ {
		a := float64(i) / float64(n) * 2 * math.Pi
		p := NewPoint(x+math.Cos(a)*radius, y+math.Sin(a)*radius)
		p.U = float64(i) / float64(n)
		o.Points = append(o.Points, p)
	}

	for i := 1; i <= n; i++ {
		next := i%n + 1
		o.Link(i, next, true) // rim
		o.Link(0, i, false)   // spoke
	}
	return o
}

// NewTrackedRig builds a tracking-linked fin: two pinned anchor points
// that follow external landmarks, plus a chain of free points rising from
// the midpoint between them. The rig records the anchor indices and the
// build-time anchor span so landmark rebinding can rescale the free part.
func NewTrackedRig(ax, ay, bx, by float64, segments int) *Object {
	o := &Object{Kind: KindTracked}

	a := NewPoint(ax, ay)
	a.Pinned = true
	b := NewPoint(bx, by)
	b.Pinned = true
	o.Points = append(o.Points, a, b)

	span := a.Pos.DistanceTo(b.Pos)
	if span == 0 {
		span = 1
	}
	midX := (ax + bx) / 2
	midY := (ay + by) / 2
	step := span / float64(segments)

	for i := 1; i <= segments; i++ {
		p := NewPoint(midX, midY-float64(i)*step)
		p.V = float64(i) / float64(segments)
		o.Points = append(o.Points, p)
	}

	o.Link(0, 2, true)
	o.Link(1, 2, true)
	for i := 3; i < len(o.Points); i++ {
		o.Link(i-1, i, true)
	}

	o.Rig = &TrackedRig{AnchorA: 0, AnchorB: 1, BaseSpan: span}
	return o
}
