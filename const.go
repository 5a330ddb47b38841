// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.2
//

package govlbl

const (
	PI  = 3.1415926535897932  // Pi
	PI2 = PI * 2.0            // 2 Pi
	Re  = 6378137.0           // Earth's radius (WGS84 semi-major axis) [m]
	Fe  = 1.0 / 298.257223563 // Earth's flattening
)

const (
	RING_SIZE = 3 // Default number of range circles kept in the observation ring
	HEAP_SIZE = 4 // Default number of candidate points kept in each heap

	DispUnknown = -1.0 // Heap dispersion while it holds a single point
	DispNoFix   = 1e6  // Dispersion of the best fix before anything is latched
)

const (
	FWTR_DENSITY     = 998.02  // Fresh water density at 20 degC [kg/m^3]
	FWTR_SOUND_SPEED = 1500.0  // Nominal sound speed in water [m/s]
	FWTR_SALINITY    = 0.0     // Fresh water salinity [PSU]
	GRAVITY_ACC      = 9.80665 // Standard gravity (ISO 80000-3:2006) [m/s^2]
	ATM_PRESSURE     = 1013.25 // Average atmospheric pressure at sea level [mBar]
)
