// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.2
//

package govlbl

import "errors"

var (
	// ErrRingSize indicates an observation ring too small to ever form a circle pair.
	ErrRingSize = errors.New("govlbl: observation ring size must be at least 2")
	// ErrHeapSize indicates a heap that cannot hold a single point.
	ErrHeapSize = errors.New("govlbl: heap size must be at least 1")
	// ErrNotEnoughCircles indicates too few stored circles for least squares refinement.
	ErrNotEnoughCircles = errors.New("govlbl: not enough range circles")
	// ErrNoFix indicates the estimator has no fix to start a refinement from.
	ErrNoFix = errors.New("govlbl: no position fix yet")
	// ErrNoConvergence indicates the refinement did not settle within the iteration limit.
	ErrNoConvergence = errors.New("govlbl: position did not converge")
	// ErrObsFormat indicates a malformed observation record.
	ErrObsFormat = errors.New("govlbl: invalid observation record")
)
