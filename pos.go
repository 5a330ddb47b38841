// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.11
//

package govlbl

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

//-------------------------------------------------------------------
// PosLLH (radians, meters)
//-------------------------------------------------------------------

type PosLLH struct {
	Lat float64
	Lon float64
	Hei float64
}

// NewPosLLH takes latitude and longitude in degrees
func NewPosLLH(latDeg, lonDeg, hei float64) *PosLLH {
	return &PosLLH{
		Lat: ToRad(latDeg),
		Lon: ToRad(lonDeg),
		Hei: hei,
	}
}

func (llh *PosLLH) ToXYZ() PosXYZ {
	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Conversion to Cartesian coordinates
	n := a / math.Sqrt(1-e*e*math.Sin(llh.Lat)*math.Sin(llh.Lat))
	return PosXYZ{
		X: (n + llh.Hei) * math.Cos(llh.Lat) * math.Cos(llh.Lon),
		Y: (n + llh.Hei) * math.Cos(llh.Lat) * math.Sin(llh.Lon),
		Z: (n*(1-e*e) + llh.Hei) * math.Sin(llh.Lat),
	}
}

func (llh *PosLLH) ToENU(base PosXYZ) PosENU {
	xyz := llh.ToXYZ()
	return xyz.ToENU(base)
}

// Read from string "lat lon [hei]" (degrees, meters)
func (llh *PosLLH) Set(s string) error {
	var err error
	f := strings.Fields(s)
	if len(f) < 2 || len(f) > 3 {
		return fmt.Errorf("expected \"lat lon [hei]\", got %q", s)
	}
	llh.Lat, err = strconv.ParseFloat(f[0], 64)
	if err != nil {
		return err
	}
	llh.Lon, err = strconv.ParseFloat(f[1], 64)
	if err != nil {
		return err
	}
	llh.Hei = 0
	if len(f) == 3 {
		llh.Hei, err = strconv.ParseFloat(f[2], 64)
		if err != nil {
			return err
		}
	}
	llh.Lat *= math.Pi / 180
	llh.Lon *= math.Pi / 180
	return nil
}

// Convert to string (degrees)
func (llh *PosLLH) String() string {
	return fmt.Sprintf("%.8f %.8f %.4f", ToDeg(llh.Lat), ToDeg(llh.Lon), llh.Hei)
}

//-------------------------------------------------------------------
// PosXYZ (ECEF)
//-------------------------------------------------------------------

type PosXYZ struct {
	X float64
	Y float64
	Z float64
}

func (pos *PosXYZ) ToLLH() PosLLH {
	// In case of origin
	if pos.X == 0 && pos.Y == 0 && pos.Z == 0 {
		return PosLLH{Lat: 0, Lon: 0, Hei: -Re}
	}

	// Ellipsoid parameters
	f := Fe                     // Flattening
	a := Re                     // Semi-major axis
	b := a * (1 - f)            // Semi-minor axis
	e := math.Sqrt(f * (2 - f)) // Eccentricity

	// Parameters for coordinate transformation
	h := a*a - b*b
	p := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y)
	t := math.Atan2(pos.Z*a, p*b)
	sint := math.Sin(t)
	cost := math.Cos(t)

	// Conversion to latitude and longitude
	lat := math.Atan2(pos.Z+h/b*sint*sint*sint, p-h/a*cost*cost*cost)
	lon := math.Atan2(pos.Y, pos.X)
	n := a / math.Sqrt(1-e*e*math.Sin(lat)*math.Sin(lat)) // Radius of curvature in the prime vertical
	hei := p/math.Cos(lat) - n
	return PosLLH{Lat: lat, Lon: lon, Hei: hei}
}

func (pos *PosXYZ) ToENU(base PosXYZ) PosENU {
	// Relative position from the reference location
	x := pos.X - base.X
	y := pos.Y - base.Y
	z := pos.Z - base.Z

	// Latitude and longitude of the reference location
	llh := base.ToLLH()
	s1 := math.Sin(llh.Lon)
	c1 := math.Cos(llh.Lon)
	s2 := math.Sin(llh.Lat)
	c2 := math.Cos(llh.Lat)

	// Rotate the relative position to convert to ENU coordinates
	return PosENU{
		E: -x*s1 + y*c1,
		N: -x*c1*s2 - y*s1*s2 + z*c2,
		U: x*c1*c2 + y*s1*c2 + z*s2,
	}
}

//-------------------------------------------------------------------
// PosENU
//-------------------------------------------------------------------

type PosENU struct {
	E float64
	N float64
	U float64
}

func (enu *PosENU) ToXYZ(base PosXYZ) PosXYZ {
	// Latitude and longitude of the reference location
	llh := base.ToLLH()
	s1 := math.Sin(llh.Lon)
	c1 := math.Cos(llh.Lon)
	s2 := math.Sin(llh.Lat)
	c2 := math.Cos(llh.Lat)

	// Rotate the ENU coordinates to convert to relative position
	x := -enu.E*s1 - enu.N*c1*s2 + enu.U*c1*c2
	y := enu.E*c1 - enu.N*s1*s2 + enu.U*s1*c2
	z := enu.N*c2 + enu.U*s2

	// Add to the reference location
	return PosXYZ{
		X: x + base.X,
		Y: y + base.Y,
		Z: z + base.Z,
	}
}

//-------------------------------------------------------------------
// Frame: local horizontal plane around an origin (X = east, Y = north)
//-------------------------------------------------------------------

type Frame struct {
	Origin PosLLH
	Mode   FrameMode
	base   PosXYZ
}

func NewFrame(origin PosLLH, mode FrameMode) *Frame {
	return &Frame{
		Origin: origin,
		Mode:   mode,
		base:   origin.ToXYZ(),
	}
}

// ToPlane projects a geodetic position onto the local plane.
// The flat mode scales by the origin latitude so that FromPlane inverts it.
func (f *Frame) ToPlane(llh PosLLH) Point2D {
	if f.Mode == FrameFlat {
		mLat, mLon := mPerDeg(f.Origin.Lat)
		return Point2D{
			X: ToDeg(llh.Lon-f.Origin.Lon) * mLon,
			Y: ToDeg(llh.Lat-f.Origin.Lat) * mLat,
		}
	}
	enu := llh.ToENU(f.base)
	return Point2D{X: enu.E, Y: enu.N}
}

// FromPlane returns the geodetic position of a point on the local plane
func (f *Frame) FromPlane(p Point2D) PosLLH {
	if f.Mode == FrameFlat {
		return PointOffset(f.Origin, p.Y, p.X)
	}
	enu := PosENU{E: p.X, N: p.Y, U: 0}
	xyz := enu.ToXYZ(f.base)
	return xyz.ToLLH()
}

//-------------------------------------------------------------------
// Short range approximations on the WGS84 ellipsoid
//-------------------------------------------------------------------

// Meters per degree of latitude and longitude at latitude lat [rad]
func mPerDeg(lat float64) (mLat, mLon float64) {
	mLat = 111132.92 - 559.82*math.Cos(2*lat) + 1.175*math.Cos(4*lat)
	mLon = 111412.84*math.Cos(lat) - 93.5*math.Cos(3*lat)
	return
}

// GeoDeltas returns the north and east projections [m] of the line from sp to ep
func GeoDeltas(sp, ep PosLLH) (dn, de float64) {
	mLat, mLon := mPerDeg((sp.Lat + ep.Lat) / 2)
	dn = ToDeg(ep.Lat-sp.Lat) * mLat
	de = ToDeg(ep.Lon-sp.Lon) * mLon
	return
}

// PointOffset moves p by dn meters north and de meters east
func PointOffset(p PosLLH, dn, de float64) PosLLH {
	mLat, mLon := mPerDeg(p.Lat)
	return PosLLH{
		Lat: p.Lat + ToRad(dn/mLat),
		Lon: p.Lon + ToRad(de/mLon),
		Hei: p.Hei,
	}
}

// HaversineInverse returns the great circle distance [m] between sp and ep
func HaversineInverse(sp, ep PosLLH) float64 {
	dLat := ep.Lat - sp.Lat
	dLon := ep.Lon - sp.Lon
	a := SQ(math.Sin(dLat/2)) + math.Cos(sp.Lat)*math.Cos(ep.Lat)*SQ(math.Sin(dLon/2))
	return Re * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineDirect returns the point dst meters from sp along the forward azimuth az [rad]
func HaversineDirect(sp PosLLH, dst, az float64) PosLLH {
	delta := dst / Re
	lat := math.Asin(math.Sin(sp.Lat)*math.Cos(delta) + math.Cos(sp.Lat)*math.Sin(delta)*math.Cos(az))
	lon := sp.Lon + math.Atan2(math.Sin(az)*math.Sin(delta)*math.Cos(sp.Lat), math.Cos(delta)-math.Sin(sp.Lat)*math.Sin(lat))
	lon = Wrap2PI(3*PI+lon) - PI
	return PosLLH{Lat: lat, Lon: lon, Hei: sp.Hei}
}

// HaversineInitialBearing returns the forward azimuth [rad, 0..2Pi] from sp toward ep
func HaversineInitialBearing(sp, ep PosLLH) float64 {
	y := math.Sin(ep.Lon-sp.Lon) * math.Cos(ep.Lat)
	x := math.Cos(sp.Lat)*math.Sin(ep.Lat) - math.Sin(sp.Lat)*math.Cos(ep.Lat)*math.Cos(ep.Lon-sp.Lon)
	return math.Mod(math.Atan2(y, x)+PI2, PI2)
}

// HaversineFinalBearing returns the azimuth [rad, 0..2Pi] on arrival at ep
func HaversineFinalBearing(sp, ep PosLLH) float64 {
	return math.Mod(HaversineInitialBearing(ep, sp)+PI, PI2)
}
