// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2026.10.16
//

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	m "github.com/uwnav/govlbl"
)

func main() {

	// Parse command line arguments
	args, err := parseArgs()
	if err != nil {
		m.PrintE(err)
		flag.Usage()
		os.Exit(1)
	}

	// Run the main application
	if err := runApplication(args); err != nil {
		m.PrintE(err)
		os.Exit(1)
	}
}

// Main application processing
func runApplication(args cmdOpt) error {

	est, err := m.NewEstimator(&m.VlblOpt{RingSize: args.ringSize, HeapSize: args.heapSize})
	if err != nil {
		return fmt.Errorf("failed to create estimator: %w", err)
	}
	conv := setObsConv(&args)
	if m.DBG_ >= 1 && conv.PropTime {
		m.PrintA("sound speed: %.2f m/s\n", conv.Speed)
	}

	// Prepare output file
	pos, err := prepareOutput(args)
	if err != nil {
		return fmt.Errorf("failed to prepare output: %w", err)
	}
	defer closeOutput(pos)

	// Print header
	if !args.noPosHeader {
		printPosHeader(pos, os.Args[0], args, conv)
	}

	st := &recState{est: est, conv: conv}

	// Live stream from a serial port
	if len(args.port) > 0 {
		return processPort(args, st, pos)
	}

	// Observation log
	obs, err := readObs(args.obsFn)
	if err != nil {
		return fmt.Errorf("failed to read observation file: %w", err)
	}
	if m.DBG_ >= 1 {
		m.PrintA("--- obs data (%s)---\n", filepath.Base(args.obsFn))
		fmt.Fprintln(os.Stderr, obs)
	}
	for _, rec := range obs.Recs {
		if err := processRecord(args, rec, st, pos); err != nil {
			m.PrintB(rec.Time, "Error processing record: %s\n", err.Error())
			continue
		}
	}
	return nil
}

// Read records from the serial port until it is closed or the process is interrupted
func processPort(args cmdOpt, st *recState, pos io.Writer) error {

	port, err := m.OpenPort(args.port, &m.PortOpt{BaudRate: args.baud, DataBits: 8, StopBits: 1, Parity: "N"})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	err = m.ScanObs(port, func(rec *m.ObsRec) error {
		if err := processRecord(args, rec, st, pos); err != nil {
			m.PrintB(rec.Time, "Error processing record: %s\n", err.Error())
		}
		return nil
	})
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args.port, err)
	}
	return nil
}

// State carried from record to record
type recState struct {
	est  *m.Estimator
	conv *m.ObsConv
}

// Process single record
func processRecord(args cmdOpt, rec *m.ObsRec, st *recState, pos io.Writer) error {

	// Filter records
	if !shouldProcessRecord(rec, args) {
		return nil
	}

	c := rec.Circle(st.conv)
	m.PrintD(2, "\n>>> %s %s\n", rec.Time.UTC().Format(m.OBS_TIME_LAYOUT), c)

	cur, ok := st.est.Ingest(c)
	best, bok := st.est.Best()

	var rsol *m.RefineSol
	if args.refine && ok {
		var err error
		rsol, err = st.est.Refine(setRefineOpt(&args))
		if err != nil && !errors.Is(err, m.ErrNotEnoughCircles) {
			m.PrintB(rec.Time, "refinement failed: %s\n", err.Error())
		}
	}

	// Output results
	printPos(pos, rec.Time, st, cur, ok, best, bok, rsol)
	return nil
}

// Filter records by time
func shouldProcessRecord(rec *m.ObsRec, args cmdOpt) bool {
	if rec.Time.Before(args.ts) {
		return false
	}
	if !args.te.IsZero() && rec.Time.After(args.te) {
		return false
	}
	return true
}

// Prepare output file
func prepareOutput(args cmdOpt) (io.WriteCloser, error) {

	// Use stdout if no output file is specified
	if len(args.posFn) == 0 {
		return &nopCloser{os.Stdout}, nil
	}

	// Create output file
	posf, err := os.Create(args.posFn)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return posf, nil
}

// Close output file
func closeOutput(pos io.WriteCloser) {
	if pos != nil {
		pos.Close()
	}
}

// nopCloser - WriteCloser that ignores close operations
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Structure to hold command line argument information
type cmdOpt struct {
	obsFn       string
	posFn       string
	port        string
	baud        int
	ts, te      time.Time
	noPosHeader bool
	planar      bool
	origin      m.PosLLH
	frame       m.FrameMode
	propTime    bool
	water       m.WaterOpt
	ringSize    int
	heapSize    int
	refine      bool
	stdRange    float64
	noChiTest   bool
}

// Parse command line arguments
func parseArgs() (a cmdOpt, err error) {
	flag.Usage = func() {
		m.PrintA(`
[Usage]
	%s [Options] -l "lat lon [hei]" obs_file     (geodetic anchors)
	%s [Options] -planar            obs_file     (planar anchors)
	%s [Options] -port /dev/ttyUSB0 ...          (live records from a serial port)

[Options]
`, filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	vOpt := m.NewVlblOpt()
	wOpt := m.NewWaterOpt()
	rOpt := m.NewRefineOpt()
	pOpt := m.NewPortOpt()
	var ts_, te_ m.TimeStr
	flag.TextVar(&ts_, "ts", m.NewTimeStr(time.Time{}), "Start time. Enclose in quotes like -ts \"2026/01/01 00:00:00\"")
	flag.TextVar(&te_, "te", m.NewTimeStr(time.Time{}), "End time. Enclose in quotes like -te \"2026/01/02 00:00:00\". Omit to process to the end.")
	flag.StringVar(&a.posFn, "o", "", "Output pos file path. If not specified, output to stdout.")
	flag.BoolVar(&a.noPosHeader, "nh", false, "Do not output header section of pos file.")
	flag.Var(&a.origin, "l", "Local origin latitude/longitude[/height] for geodetic anchors. Enclose in quotes like -l \"48.5 44.5 0\"")
	flag.BoolVar(&a.planar, "planar", false, "Anchor positions are x/y in meters on the local plane.")
	flag.Var(&a.frame, "frame", "Local plane construction for geodetic anchors. enu (default) or flat")
	flag.BoolVar(&a.propTime, "pt", false, "The value column is a one-way propagation time [s] instead of a range [m].")
	flag.Float64Var(&a.water.Temp, "t", wOpt.Temp, "Water temperature [degC] for the sound speed")
	flag.Float64Var(&a.water.Salinity, "s", wOpt.Salinity, "Water salinity [PSU] for the sound speed")
	flag.Float64Var(&a.water.Pressure, "p", wOpt.Pressure, "Water pressure [mBar] for the sound speed")
	flag.Float64Var(&a.water.SoundSpeed, "sv", wOpt.SoundSpeed, "Fixed sound speed [m/s]. 0 computes it from -t, -s and -p")
	flag.IntVar(&a.ringSize, "n", vOpt.RingSize, "Number of range circles kept for intersection")
	flag.IntVar(&a.heapSize, "m", vOpt.HeapSize, "Number of candidate points kept in each heap")
	flag.BoolVar(&a.refine, "refine", false, "Refine the fix by least squares over the stored range circles")
	flag.Float64Var(&a.stdRange, "stdR", rOpt.StdRange, "Range noise (standard deviation) [m] for the refinement")
	flag.BoolVar(&a.noChiTest, "nx2", rOpt.NoChiTest, "Do not run the chi-squared test on the refinement residuals")
	flag.StringVar(&a.port, "port", "", "Serial port delivering observation records")
	flag.IntVar(&a.baud, "baud", pOpt.BaudRate, "Serial port baud rate")
	var dbg int
	flag.IntVar(&dbg, "x", 0, "Debug information display. Specify level value. 0(OFF), 1(display), 2(detailed display), 3(most detailed)")
	flag.Parse()
	switch {
	case len(a.port) > 0 && flag.NArg() == 0:
	case len(a.port) == 0 && flag.NArg() == 1:
		a.obsFn = flag.Arg(0)
	default:
		return a, fmt.Errorf("too less or many arguments")
	}
	if !a.planar && !flagGiven("l") {
		return a, fmt.Errorf("the local origin must be specified for geodetic anchors! (-l option, or -planar)")
	}
	a.ts = time.Time(ts_)
	a.te = time.Time(te_)
	m.DBG_ = dbg
	if m.DBG_ >= 1 && !a.planar {
		m.PrintA("origin(llh): %s (%s)\n", a.origin.String(), a.frame.String())
	}
	return
}

// Whether the named flag was set on the command line
func flagGiven(name string) (given bool) {
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			given = true
		}
	})
	return
}

// Read observation file
func readObs(fn string) (*m.Obs, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	obs, err := m.ReadObs(f)
	if err != nil {
		return nil, err
	}
	return obs, nil
}

// Print pos file header
func printPosHeader(pos io.Writer, cmd string, args cmdOpt, conv *m.ObsConv) {
	fmt.Fprintf(pos, "%% program   : %s\n", filepath.Base(cmd))
	if len(args.port) > 0 {
		fmt.Fprintf(pos, "%% inp port  : %s (%d)\n", args.port, args.baud)
	} else {
		fmt.Fprintf(pos, "%% inp file  : %s\n", args.obsFn)
	}
	fmt.Fprintf(pos, "%% ring/heap : %d/%d\n", args.ringSize, args.heapSize)
	if conv.PropTime {
		fmt.Fprintf(pos, "%% sound spd : %.2f m/s\n", conv.Speed)
	}
	if conv.Frame != nil {
		fmt.Fprintf(pos, "%% ref pos   : %s (%s)\n", args.origin.String(), args.frame.String())
		fmt.Fprintf(pos, "%%  UTC                      Q  nc    cur lat(deg)   cur lon(deg)   cur disp   best lat(deg)  best lon(deg)  best disp")
	} else {
		fmt.Fprintf(pos, "%%  UTC                      Q  nc        cur x(m)       cur y(m)   cur disp      best x(m)      best y(m)  best disp")
	}
	if args.refine {
		fmt.Fprintf(pos, "        ref x/lat      ref y/lon    rms(m)   drms(m) chi")
	}
	fmt.Fprintf(pos, "\n")
}

// Output one line of the POS file
func printPos(pos io.Writer, t time.Time, st *recState, cur m.Fix, ok bool, best m.Fix, bok bool, rsol *m.RefineSol) {
	Q := 0
	if ok {
		Q = 1
	}
	nc := 0
	for range st.est.Circles() {
		nc++
	}
	c1, c2 := toOut(st.conv, cur.Pos(), ok)
	b1, b2 := toOut(st.conv, best.Pos(), bok)
	if !ok {
		cur.Disp = 0
	}
	if !bok {
		best.Disp = 0
	}
	fmt.Fprintf(pos, "%s %3d %3d %14.9f %14.9f %10.4f %14.9f %14.9f %10.4f", t.UTC().Format(m.OBS_TIME_LAYOUT), Q, nc, c1, c2, cur.Disp, b1, b2, best.Disp)
	if rsol != nil {
		r1, r2 := toOut(st.conv, rsol.Pos, true)
		chi := 0
		if rsol.ChiOK {
			chi = 1
		}
		fmt.Fprintf(pos, " %14.9f %14.9f %9.4f %9.4f %3d", r1, r2, rsol.Rms, rsol.Drms, chi)
	}
	fmt.Fprintf(pos, "\n")
}

// Point on the local plane as output values (x/y or lat/lon in degrees)
func toOut(conv *m.ObsConv, p m.Point2D, ok bool) (float64, float64) {
	if !ok {
		return 0, 0
	}
	if conv.Frame == nil {
		return p.X, p.Y
	}
	llh := conv.Frame.FromPlane(p)
	return m.ToDeg(llh.Lat), m.ToDeg(llh.Lon)
}

func setObsConv(args *cmdOpt) *m.ObsConv {
	conv := &m.ObsConv{
		PropTime: args.propTime,
		Speed:    args.water.Speed(),
	}
	if !args.planar {
		conv.Frame = m.NewFrame(args.origin, args.frame)
	}
	return conv
}

func setRefineOpt(args *cmdOpt) *m.RefineOpt {
	opt := m.NewRefineOpt()
	opt.StdRange = args.stdRange
	opt.NoChiTest = args.noChiTest
	return opt
}
