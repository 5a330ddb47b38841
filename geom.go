// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.4
//

package govlbl

import (
	"fmt"
	"math"
)

// Point on the local horizontal plane [m]
type Point2D struct {
	X float64
	Y float64
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// RangeCircle is one observation: anchor position and the horizontal range from it to the target.
type RangeCircle struct {
	C Point2D // Anchor position
	R float64 // Range [m]
}

func (c RangeCircle) String() string {
	return fmt.Sprintf("%s r=%.3f", c.C, c.R)
}

// Intersect returns the two intersection points of c1 and c2.
// ok is false unless |r1-r2| < d < r1+r2, so tangent, nested and concentric
// circles produce no solution.
func Intersect(c1, c2 RangeCircle) (p1, p2 Point2D, ok bool) {

	dx := c2.C.X - c1.C.X
	dy := c2.C.Y - c1.C.Y
	d := math.Sqrt(dx*dx + dy*dy)

	if !(d > math.Abs(c1.R-c2.R) && d < c1.R+c2.R) {
		return p1, p2, false
	}

	// Distance from c1 to the chord midpoint, and the half chord length
	a := (SQ(c1.R) - SQ(c2.R) + d*d) / (2 * d)
	h := math.Sqrt(SQ(c1.R) - a*a)
	if math.IsNaN(h) { // r1^2 < a^2 by round-off right at the boundary
		return p1, p2, false
	}

	// Chord midpoint
	mx := c1.C.X + a*dx/d
	my := c1.C.Y + a*dy/d

	p1 = Point2D{X: mx + h*dy/d, Y: my - h*dx/d}
	p2 = Point2D{X: mx - h*dy/d, Y: my + h*dx/d}
	return p1, p2, true
}
