package govlbl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoundSpeedUNESCO(t *testing.T) {
	cases := []struct {
		name    string
		t, p, s float64
		want    float64
	}{
		{"PureWater0C", 0, 0, 0, 1402.388},
		{"FreshWater20C", 20, ATM_PRESSURE, 0, 1482.5106},
		{"Seawater25C", 25, 0, 35, 1534.3926},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, SoundSpeedUNESCO(tc.t, tc.p, tc.s), 1e-3)
		})
	}
}

func TestWaterDensity(t *testing.T) {
	cases := []struct {
		name    string
		t, p, s float64
		want    float64
	}{
		{"PureWater0C", 0, 0, 0, 999.842594},
		{"PureWater20C", 20, 0, 0, 998.2063},
		{"Seawater25C", 25, 0, 35, 1023.3431},
		{"Seawater0C", 0, 0, 35, 1028.1063},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, WaterDensity(tc.t, tc.p, tc.s), 1e-3)
		})
	}
}

func TestGravityWGS84(t *testing.T) {
	assert.InDelta(t, 9.7803253359, GravityWGS84(0), 1e-9)
	assert.InDelta(t, 9.8321849, GravityWGS84(PI/2), 1e-6)
}

func TestDepthPressure(t *testing.T) {
	p := PressureByDepth(10, ATM_PRESSURE, FWTR_DENSITY, GRAVITY_ACC)
	assert.InDelta(t, ATM_PRESSURE+978.73, p, 0.01)
	assert.InDelta(t, 10, DepthByPressure(p, ATM_PRESSURE, FWTR_DENSITY, GRAVITY_ACC), 1e-9)
}

func TestFreezingPoint(t *testing.T) {
	assert.InDelta(t, -1.922, FreezingPoint(0, 35), 1e-3)
	assert.Equal(t, 0.0, FreezingPoint(0, 0))
}

func TestRangeConversion(t *testing.T) {
	assert.InDelta(t, 150, RangeByPropTime(0.1, FWTR_SOUND_SPEED), 1e-9)
	assert.InDelta(t, 4, HorizontalRange(5, 3), 1e-12)
	assert.InDelta(t, 4, HorizontalRange(5, -3), 1e-12)
	assert.Equal(t, 0.0, HorizontalRange(3, 5))
}

func TestWaterOpt_Speed(t *testing.T) {
	w := NewWaterOpt()
	assert.InDelta(t, 1482.5106, w.Speed(), 1e-3)
	w.SoundSpeed = 1450
	assert.Equal(t, 1450.0, w.Speed())
}
