// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.12
//

// Water physics used to turn acoustic propagation times into ranges.
// Pressures are in mBar, temperatures in degC and salinity in PSU.

package govlbl

import (
	"math"
)

// WaterOpt describes the water column between the anchors and the target
type WaterOpt struct {
	Temp       float64 // Temperature [degC]
	Salinity   float64 // Salinity [PSU]
	Pressure   float64 // Pressure at the working depth [mBar]
	SoundSpeed float64 // Fixed sound speed [m/s]. Computed from the above when 0
}

func NewWaterOpt() *WaterOpt {
	return &WaterOpt{
		Temp:       20,
		Salinity:   FWTR_SALINITY,
		Pressure:   ATM_PRESSURE,
		SoundSpeed: 0,
	}
}

// Speed returns the sound speed to use for range conversion [m/s]
func (w *WaterOpt) Speed() float64 {
	if w.SoundSpeed > 0 {
		return w.SoundSpeed
	}
	return SoundSpeedUNESCO(w.Temp, w.Pressure, w.Salinity)
}

// WaterDensity calculates in situ density of water [kg/m^3]
// Millero et al. 1980, Deep-Sea Res. 27A, 255-264
func WaterDensity(t, p, s float64) float64 {
	p = p / 1000.0
	sr := math.Sqrt(s)
	sig := ((4.8314e-4 * s) +
		((-1.6546e-6*t+1.0227e-4)*t-5.72466e-3)*sr +
		(((5.3875e-9*t-8.2467e-7)*t+7.6438e-5)*t-4.0899e-3)*t + 0.824493) * s
	sig += ((((6.536332e-9*t-1.120083e-6)*t+1.001685e-4)*t-9.095290e-3)*t+6.793952e-2)*t - 0.157406

	b := ((9.1697e-10*t+2.0816e-8)*t-9.9348e-7)*s + (5.2787e-8*t-6.12293e-6)*t + 8.50935e-5

	k0 := ((((-5.3009e-4*t+1.6483e-2)*t+7.944e-2)*sr)+
		((-6.1670e-5*t+1.09987e-2)*t-0.603459)*t+54.6746)*s +
		(((-5.155288e-5*t+1.360477e-2)*t-2.327105)*t+148.4206)*t + 19652.21

	a := (1.91075e-4*sr+(-1.6078e-6*t-1.0981e-5)*t+2.2838e-3)*s +
		((-5.77905e-7*t+1.16092e-4)*t+1.43713e-3)*t + 3.239908

	k := (b*p+a)*p + k0

	return 1000.0 + (k*sig+1000.0*p)/(k-p)
}

// SoundSpeedUNESCO calculates the speed of sound in water [m/s]
// The UNESCO equation: Chen and Millero (1977)
func SoundSpeedUNESCO(t, p, s float64) float64 {
	p = p / 1000.0
	sr := math.Sqrt(s)

	d := 1.727e-3 - 7.9836e-6*p

	b1 := 7.3637e-5 + 1.7945e-7*t
	b0 := -1.922e-2 - 4.42e-5*t
	b := b0 + b1*p

	a3 := (-3.389e-13*t+6.649e-12)*t + 1.100e-10
	a2 := ((7.988e-12*t-1.6002e-10)*t+9.1041e-9)*t - 3.9064e-7
	a1 := (((-2.0122e-10*t+1.0507e-8)*t-6.4885e-8)*t-1.2580e-5)*t + 9.4742e-5
	a0 := (((-3.21e-8*t+2.006e-6)*t+7.164e-5)*t-1.262e-2)*t + 1.389
	a := ((a3*p+a2)*p+a1)*p + a0

	c3 := (-2.3643e-12*t+3.8504e-10)*t - 9.7729e-9
	c2 := (((1.0405e-12*t-2.5335e-10)*t+2.5974e-8)*t-1.7107e-6)*t + 3.1260e-5
	c1 := (((-6.1185e-10*t+1.3621e-7)*t-8.1788e-6)*t+6.8982e-4)*t + 0.153563
	c0 := ((((3.1464e-9*t-1.47800e-6)*t+3.3420e-4)*t-5.80852e-2)*t+5.03711)*t + 1402.388
	c := ((c3*p+c2)*p+c1)*p + c0

	return c + (a+b*sr+d*s)*s
}

// GravityWGS84 calculates gravity at sea level at latitude phi [rad]
func GravityWGS84(phi float64) float64 {
	s2 := SQ(math.Sin(phi))
	return 9.7803253359 * ((1.0 + 0.00193185265241*s2) / math.Sqrt(1.0-0.00669437999013*s2))
}

// DepthByPressure calculates the depth [m] where pressure is p, below a surface at pressure p0
func DepthByPressure(p, p0, rho, g float64) float64 {
	return 100.0 * (p - p0) / (rho * g)
}

// PressureByDepth calculates the pressure [mBar] at depth h under a water column of constant density
func PressureByDepth(h, p0, rho, g float64) float64 {
	return h*rho*g/100.0 + p0
}

// FreezingPoint calculates the freezing temperature of seawater [degC]
// UNESCO technical papers in marine science 44, 1983, p. 30
func FreezingPoint(p, s float64) float64 {
	return (-0.0575+1.710523e-3*math.Sqrt(s)-2.154996e-4*s)*s - 7.53e-6*p
}

// RangeByPropTime converts a one-way propagation time [s] to a slant range [m]
func RangeByPropTime(t, v float64) float64 {
	return t * v
}

// HorizontalRange reduces a slant range to the horizontal plane given the depth difference dz.
// Returns 0 when the slant range is shorter than the depth difference.
func HorizontalRange(slant, dz float64) float64 {
	if math.Abs(dz) >= slant {
		return 0
	}
	return math.Sqrt(SQ(slant) - SQ(dz))
}
