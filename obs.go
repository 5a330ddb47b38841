// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.14
//

package govlbl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// Layout of the record time stamp (two fields) as written
const OBS_TIME_LAYOUT = "2006/01/02 15:04:05.000"

// Parsing accepts any number of fraction digits, including none
const obsParseLayout = "2006/01/02 15:04:05"

// One range observation as written in the observation log:
//
//	yyyy/mm/dd hh:mm:ss[.sss]  A1  A2  V  [DZ]
//
// A1 A2 are latitude/longitude [deg] or x/y [m] depending on the frame.
// V is a range [m] or a one-way propagation time [s].
// DZ is the depth difference between anchor and target [m] (0 if omitted).
type ObsRec struct {
	Time time.Time
	A1   float64
	A2   float64
	V    float64
	Dz   float64
}

// How ObsRec values map to a RangeCircle
type ObsConv struct {
	Frame    *Frame  // Local plane for geodetic anchors. nil means A1/A2 are already x/y
	PropTime bool    // V is a propagation time
	Speed    float64 // Sound speed for PropTime [m/s]
}

// Circle converts the record to a range circle on the local plane
func (r *ObsRec) Circle(conv *ObsConv) RangeCircle {
	c := RangeCircle{C: Point2D{X: r.A1, Y: r.A2}, R: r.V}
	if conv == nil {
		return c
	}
	if conv.Frame != nil {
		c.C = conv.Frame.ToPlane(PosLLH{Lat: ToRad(r.A1), Lon: ToRad(r.A2)})
	}
	if conv.PropTime {
		c.R = RangeByPropTime(r.V, conv.Speed)
	}
	if r.Dz != 0 {
		c.R = HorizontalRange(c.R, r.Dz)
	}
	return c
}

func (r *ObsRec) String() string {
	return fmt.Sprintf("%s %14.9f %14.9f %10.4f %8.3f", r.Time.UTC().Format(OBS_TIME_LAYOUT), r.A1, r.A2, r.V, r.Dz)
}

// Structure to store all records of an observation log
type Obs struct {
	Recs []*ObsRec // Sorted by time in ascending order
}

// Display observation data overview
func (p *Obs) String() string {
	if len(p.Recs) == 0 {
		return "NO DATA"
	}
	anchors := make([][2]float64, 0)
	for _, r := range p.Recs {
		a := [2]float64{r.A1, r.A2}
		if !slices.Contains(anchors, a) {
			anchors = append(anchors, a)
		}
	}
	a := `
datetime:
	%s - %s (%d)

anchors: %d
`
	return fmt.Sprintf(a, p.Recs[0].Time.UTC().Format(OBS_TIME_LAYOUT), p.Recs[len(p.Recs)-1].Time.UTC().Format(OBS_TIME_LAYOUT), len(p.Recs), len(anchors))
}

func isComment(l string) bool {
	l = strings.TrimSpace(l)
	return len(l) == 0 || l[0] == '%' || l[0] == '#'
}

// Parse one record line
func ParseObsRec(l string) (*ObsRec, error) {
	f := strings.Fields(l)
	if len(f) < 5 || len(f) > 6 {
		return nil, fmt.Errorf("%w: %d fields in %q", ErrObsFormat, len(f), l)
	}
	t, err := time.Parse(obsParseLayout, f[0]+" "+f[1])
	if err != nil {
		return nil, fmt.Errorf("%w: time: %s", ErrObsFormat, err.Error())
	}
	vals := make([]float64, 4)
	for i, s := range f[2:] {
		vals[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %s", ErrObsFormat, i+3, err.Error())
		}
	}
	return &ObsRec{Time: t, A1: vals[0], A2: vals[1], V: vals[2], Dz: vals[3]}, nil
}

// ScanObs reads records one by one and hands each to fn.
// Comment and blank lines are skipped. Scanning stops at the first error from fn.
func ScanObs(r io.Reader, fn func(*ObsRec) error) error {
	s := bufio.NewScanner(r)
	ln := 0
	for s.Scan() {
		ln++
		line := s.Text()
		if isComment(line) {
			continue
		}
		rec, err := ParseObsRec(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", ln, err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return s.Err()
}

// ReadObs reads a whole observation log.
// Records are sorted by time and exact duplicates are dropped.
func ReadObs(r io.Reader) (*Obs, error) {
	obs := &Obs{Recs: make([]*ObsRec, 0)}
	err := ScanObs(r, func(rec *ObsRec) error {
		obs.Recs = append(obs.Recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(obs.Recs, func(a, b *ObsRec) int {
		return a.Time.Compare(b.Time)
	})
	obs.Recs = slices.CompactFunc(obs.Recs, func(a, b *ObsRec) bool {
		return a.Time.Equal(b.Time) && a.A1 == b.A1 && a.A2 == b.A2 && a.V == b.V && a.Dz == b.Dz
	})
	return obs, nil
}
