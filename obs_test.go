package govlbl

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const obsLog = `% test log
2025/03/01 10:00:02.000  100.0   0.0  57.7
# comment

2025/03/01 10:00:00.000    0.0   0.0  57.7  0.0
2025/03/01 10:00:01.000   50.0  86.6  57.7
2025/03/01 10:00:01.000   50.0  86.6  57.7
`

func TestParseObsRec(t *testing.T) {
	r, err := ParseObsRec("2025/03/01 10:00:00.250 48.5 44.5 0.04 3.5")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 1, 10, 0, 0, 250e6, time.UTC).Equal(r.Time))
	assert.Equal(t, 48.5, r.A1)
	assert.Equal(t, 44.5, r.A2)
	assert.Equal(t, 0.04, r.V)
	assert.Equal(t, 3.5, r.Dz)

	r, err = ParseObsRec("2025/03/01 10:00:00.000 1 2 3")
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.Dz)

	// Fraction digits are optional
	r, err = ParseObsRec("2025/03/01 10:00:07 1 2 3")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 1, 10, 0, 7, 0, time.UTC).Equal(r.Time))

	r, err = ParseObsRec("2025/03/01 10:00:07.5 1 2 3")
	require.NoError(t, err)
	assert.True(t, time.Date(2025, 3, 1, 10, 0, 7, 500e6, time.UTC).Equal(r.Time))
	assert.Equal(t, "2025/03/01 10:00:07.500", r.Time.Format(OBS_TIME_LAYOUT))

	for _, l := range []string{
		"2025/03/01 10:00:00.000 1 2",
		"2025/03/01 10:00:00.000 1 2 3 4 5",
		"2025-03-01 10:00:00.000 1 2 3",
		"2025/03/01 10:00:00.000 1 x 3",
	} {
		_, err := ParseObsRec(l)
		assert.True(t, errors.Is(err, ErrObsFormat), l)
	}
}

func TestReadObs(t *testing.T) {
	obs, err := ReadObs(strings.NewReader(obsLog))
	require.NoError(t, err)
	require.Len(t, obs.Recs, 3)
	assert.Equal(t, 0.0, obs.Recs[0].A1)
	assert.Equal(t, 50.0, obs.Recs[1].A1)
	assert.Equal(t, 100.0, obs.Recs[2].A1)
	assert.Contains(t, obs.String(), "anchors: 3")

	_, err = ReadObs(strings.NewReader("2025/03/01 10:00:00.000 1 2\n"))
	assert.True(t, errors.Is(err, ErrObsFormat))
	assert.Contains(t, err.Error(), "line 1")

	empty, err := ReadObs(strings.NewReader("# nothing\n"))
	require.NoError(t, err)
	assert.Equal(t, "NO DATA", empty.String())
}

func TestScanObs_Stop(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := ScanObs(strings.NewReader(obsLog), func(*ObsRec) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 2, n)
}

func TestObsRec_Circle(t *testing.T) {
	r := &ObsRec{A1: 10, A2: 20, V: 0.1}
	assert.Equal(t, RangeCircle{Point2D{10, 20}, 0.1}, r.Circle(nil))

	c := r.Circle(&ObsConv{PropTime: true, Speed: 1500})
	assert.Equal(t, Point2D{10, 20}, c.C)
	assert.InDelta(t, 150, c.R, 1e-9)

	r = &ObsRec{A1: 10, A2: 20, V: 5, Dz: 3}
	assert.InDelta(t, 4, r.Circle(&ObsConv{}).R, 1e-12)

	f := NewFrame(*NewPosLLH(48.5, 44.5, 0), FrameENU)
	llh := f.FromPlane(Point2D{120, -80})
	r = &ObsRec{A1: ToDeg(llh.Lat), A2: ToDeg(llh.Lon), V: 30}
	c = r.Circle(&ObsConv{Frame: f})
	assert.InDelta(t, 120, c.C.X, 1e-2)
	assert.InDelta(t, -80, c.C.Y, 1e-2)
	assert.Equal(t, 30.0, c.R)
}
