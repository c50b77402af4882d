package strength

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
)

var (
	savCal = Calibration{Min: 18, Max: 38}
	rawCal = Calibration{Min: 0, Max: 60}
)

func TestNormalize_Bounds(t *testing.T) {
	for _, cal := range []Calibration{savCal, rawCal, {Min: 18, Max: 40}} {
		lo, err := Normalize(cal.Min, cal)
		require.NoError(t, err)
		assert.Equal(t, 0, lo)

		hi, err := Normalize(cal.Max, cal)
		require.NoError(t, err)
		assert.Equal(t, 100, hi)
	}
}

func TestNormalize_ClampsAndRounds(t *testing.T) {
	cases := []struct {
		points float64
		cal    Calibration
		want   int
	}{
		{10, savCal, 0},
		{50, savCal, 100},
		{28, savCal, 50},
		{30, rawCal, 50},
		{25, savCal, 35},
		{28.1, savCal, 51},
		{20.5, Calibration{Min: 18, Max: 40}, 11},
	}
	for _, tc := range cases {
		got, err := Normalize(tc.points, tc.cal)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "points=%v cal=%+v", tc.points, tc.cal)
	}
}

func TestNormalize_Monotonic(t *testing.T) {
	prev := -1
	for p := 0.0; p <= 60; p += 0.25 {
		got, err := Normalize(p, savCal)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "points %v", p)
		prev = got
	}
}

func TestNormalize_DegenerateCalibration(t *testing.T) {
	for _, cal := range []Calibration{
		{Min: 30, Max: 30},
		{Min: 40, Max: 18},
		{Min: math.NaN(), Max: 10},
		{Min: 0, Max: math.Inf(1)},
	} {
		_, err := Normalize(25, cal)
		require.Error(t, err)
		assert.True(t, errors.IsDegenerateCalibration(err), "cal %+v", cal)
	}
}

func TestNormalizeAll(t *testing.T) {
	got, err := NormalizeAll([]float64{18, 28, 38, 45}, savCal)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 50, 100, 100}, got)

	_, err = NormalizeAll([]float64{1}, Calibration{})
	assert.True(t, errors.IsDegenerateCalibration(err))
}

func TestCoarseTiers(t *testing.T) {
	table := CoarseTiers()
	require.NoError(t, table.Validate())

	cases := map[float64]Tier{
		100: TierExcellent, 80: TierExcellent,
		79: TierGood, 60: TierGood,
		59: TierModerate, 40: TierModerate,
		39: TierChallenging, 0: TierChallenging,
	}
	for pct, want := range cases {
		assert.Equal(t, want, TierOf(pct, table), "pct %v", pct)
	}
}

func TestFineTiers(t *testing.T) {
	table := FineTiers()
	require.NoError(t, table.Validate())

	assert.Equal(t, TierStrong, table.TierOf(30))
	assert.Equal(t, TierStrong, table.TierOf(35))
	assert.Equal(t, TierStable, table.TierOf(25))
	assert.Equal(t, TierStable, table.TierOf(29.9))
	assert.Equal(t, TierWeak, table.TierOf(24))
}

func TestTierTable_Validate(t *testing.T) {
	bad := []TierTable{
		{Name: "no-basis", Floor: TierWeak},
		{Name: "no-floor", Basis: BasisPercent},
		{Name: "ascending", Basis: BasisPercent, Floor: TierWeak, Thresholds: []Threshold{{Min: 10, Tier: TierStable}, {Min: 20, Tier: TierStrong}}},
		{Name: "empty-tier", Basis: BasisPoints, Floor: TierWeak, Thresholds: []Threshold{{Min: 10}}},
	}
	for _, tbl := range bad {
		err := tbl.Validate()
		require.Error(t, err, tbl.Name)
		assert.True(t, errors.IsCode(err, errors.CodeInvalidTierTable), tbl.Name)
	}
}

func TestClassify_UsesTableBasis(t *testing.T) {
	s, err := Classify(28, savCal, CoarseTiers())
	require.NoError(t, err)
	assert.Equal(t, Score{Points: 28, Percent: 50, Tier: TierModerate}, s)

	// same reading against the raw-points scheme: 28 points is Stable
	s, err = Classify(28, savCal, FineTiers())
	require.NoError(t, err)
	assert.Equal(t, TierStable, s.Tier)
	assert.Equal(t, 50, s.Percent)

	_, err = Classify(28, Calibration{Min: 1, Max: 1}, CoarseTiers())
	assert.True(t, errors.IsDegenerateCalibration(err))
}

//Personal.AI order the ending
