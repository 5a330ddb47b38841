// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.9
//

// Least squares refinement of a resolved fix.
// Once the heaps have picked the right side of every anchor baseline the
// ambiguity is gone, and the ranges in the observation ring can be solved
// together by Gauss-Newton iteration starting from that fix.

package govlbl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RefineOpt contains options for the least squares refinement
type RefineOpt struct {
	MaxLoop   int     // Maximum number of iterations
	ConvThres float64 // Convergence threshold for position updates [m]
	StdRange  float64 // Range noise (standard deviation) [m]
	NoChiTest bool    // Skip the chi-squared test of the residuals
}

func NewRefineOpt() *RefineOpt {
	return &RefineOpt{
		MaxLoop:   10,
		ConvThres: 0.001,
		StdRange:  0.5,
		NoChiTest: false,
	}
}

// RefineSol contains the result of the least squares refinement
type RefineSol struct {
	Pos   Point2D    // Refined position
	Res   []float64  // Range residuals (measured - computed) [m]
	Rms   float64    // RMS of the residuals [m]
	Drms  float64    // DRMS from the error covariance [m]
	Cov   *mat.Dense // Error covariance (2 x 2) [m^2]
	Iter  int        // Number of iterations used
	ChiOK bool       // Residuals passed the chi-squared test (always true if skipped)
}

// Refine solves the ranges in the observation ring starting from the best fix
// (or the current fix while no best fix is latched).
func (e *Estimator) Refine(opt *RefineOpt) (*RefineSol, error) {
	x0, ok := e.Best()
	if !ok {
		x0, ok = e.Current()
	}
	if !ok {
		return nil, ErrNoFix
	}
	circles := make([]RangeCircle, 0, e.ring.Len())
	for c := range e.Circles() {
		circles = append(circles, c)
	}
	return RefinePos(circles, x0.Pos(), opt)
}

// RefinePos solves the position from three or more range circles by Gauss-Newton iteration
func RefinePos(circles []RangeCircle, x0 Point2D, opt *RefineOpt) (*RefineSol, error) {

	if opt == nil {
		opt = NewRefineOpt()
	}
	n := len(circles)
	if n < 3 {
		return nil, fmt.Errorf("%d circles: %w", n, ErrNotEnoughCircles)
	}

	x := x0
	G := mat.NewDense(n, 2, nil)
	dr := mat.NewVecDense(n, nil)

	for i := 0; i < opt.MaxLoop; i++ {

		// Design matrix and residuals at the current position
		setDesign(circles, x, G, dr)

		dx, cov, err := SolveLS(G, dr, nil)
		if err != nil {
			return nil, fmt.Errorf("SolveLS() failed: %w", err)
		}
		x.X += dx.AtVec(0)
		x.Y += dx.AtVec(1)
		PrintD(3, "\t\trefine #%d: %s dx=(%.4f, %.4f)\n", i, x, dx.AtVec(0), dx.AtVec(1))

		if math.Hypot(dx.AtVec(0), dx.AtVec(1)) < opt.ConvThres {
			sol := setRefineSol(circles, x, cov, i+1, opt)
			if DBG_ >= 3 {
				PrintA("\t\tcov:\n")
				PrintMat(sol.Cov)
			}
			return sol, nil
		}
	}

	return nil, fmt.Errorf("%d iterations from %s: %w", opt.MaxLoop, x0, ErrNoConvergence)
}

// Fill G with unit vectors from each anchor toward x and dr with the range residuals
func setDesign(circles []RangeCircle, x Point2D, G *mat.Dense, dr *mat.VecDense) {
	for j, c := range circles {
		rho := Dist2D(x, c.C)
		if rho == 0 {
			// The gradient is undefined on the anchor itself
			G.Set(j, 0, 0)
			G.Set(j, 1, 0)
		} else {
			G.Set(j, 0, (x.X-c.C.X)/rho)
			G.Set(j, 1, (x.Y-c.C.Y)/rho)
		}
		dr.SetVec(j, c.R-rho)
	}
}

func setRefineSol(circles []RangeCircle, x Point2D, cov *mat.Dense, iter int, opt *RefineOpt) *RefineSol {
	res := make([]float64, len(circles))
	for j, c := range circles {
		res[j] = c.R - Dist2D(x, c.C)
	}
	norm := floats.Norm(res, 2)

	var scaled mat.Dense
	scaled.Scale(SQ(opt.StdRange), cov)

	sol := &RefineSol{
		Pos:   x,
		Res:   res,
		Rms:   norm / math.Sqrt(float64(len(res))),
		Drms:  math.Sqrt(scaled.At(0, 0) + scaled.At(1, 1)),
		Cov:   &scaled,
		Iter:  iter,
		ChiOK: true,
	}

	// Chi-squared test with n-2 degrees of freedom
	if !opt.NoChiTest && opt.StdRange > 0 {
		chi := SQ(norm) / SQ(opt.StdRange)
		lim := ChiSqr(len(res) - 3)
		sol.ChiOK = chi < lim
		PrintD(2, "\tchi2: %.3f (lim %.1f)\n", chi, lim)
	}

	return sol
}
