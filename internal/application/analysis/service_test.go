package analysis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Jyotish-Intelligence/internal/config"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/lifedomain"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Jyotish-Intelligence/internal/testutil"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

// MockCache is a testify mock of redis.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string, dest interface{}) error {
	return m.Called(ctx, key, dest).Error(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func (m *MockCache) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration,
	loader func(ctx context.Context) (interface{}, error)) (bool, error) {
	args := m.Called(ctx, key, dest, ttl, loader)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func fixedClock() time.Time { return testutil.SampleInstant }

func newTestService(opts ...Option) Service {
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	return NewService(config.NewDefaultConfig().Scoring, logging.NewNopLogger(), opts...)
}

func lordsOf(r *Report) []string {
	out := make([]string, len(r.Dasha))
	for i, ap := range r.Dasha {
		out[i] = ap.Lord
	}
	return out
}

func TestAnalyze_Report(t *testing.T) {
	svc := newTestService()
	report, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)

	assert.Equal(t, "Leo", report.Ascendant)
	assert.Equal(t, config.DefaultCalibration, report.Calibration)
	assert.Equal(t, config.DefaultTierScheme, report.TierScheme)
	assert.False(t, report.Cached)

	require.Len(t, report.Houses, 12)
	assert.Equal(t, "Leo", report.Houses[0].Sign)
	assert.Equal(t, 85, report.Houses[0].Score)
	assert.Equal(t, strength.TierExcellent, report.Houses[0].Tier)
	assert.Equal(t, "Taurus", report.Houses[9].Sign)
	assert.Equal(t, 35, report.Houses[9].Score)

	require.Len(t, report.Placements, 2)
	assert.EqualValues(t, 10, report.Placements[0].House)
	assert.Equal(t, "Moon", report.Placements[0].NakshatraLord)
	assert.EqualValues(t, 4, report.Placements[1].House)

	assert.Equal(t, []string{"Saturn", "Mercury", "Venus"}, lordsOf(report))
	assert.Equal(t, 21, report.Dasha[0].Progress)
	assert.Equal(t, "Ketu", report.Dasha[1].NextLord)

	require.Len(t, report.Domains, 5)
	career := report.Domains[0]
	assert.Equal(t, "career", career.Name)
	assert.Equal(t, 35, career.Score)
	// Venus rules Taurus, the tenth house from Leo
	assert.Equal(t, []string{"Saturn", "Mercury", "Venus"}, career.SupportingLords)
}

func TestAnalyze_DefaultInstantUsesClock(t *testing.T) {
	req := testutil.SampleAnalysisRequest()
	req.At = time.Time{}

	report, err := newTestService().Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, report.At.Equal(testutil.SampleInstant))
	assert.Equal(t, []string{"Saturn", "Mercury", "Venus"}, lordsOf(report))
}

func TestAnalyze_EmptyChainIsNotAnError(t *testing.T) {
	req := testutil.SampleAnalysisRequest()
	req.At = testutil.Date(1990, 1, 1)

	report, err := newTestService().Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, report.Dasha)
	for _, v := range report.Domains {
		assert.False(t, v.SupportivePeriod)
	}
}

func TestAnalyze_SelectsProfileAndDomains(t *testing.T) {
	req := testutil.SampleAnalysisRequest()
	req.Calibration = "raw"
	req.TierScheme = "fine"
	req.Domains = []string{"Wealth"}

	report, err := newTestService().Analyze(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, report.Domains, 1)
	assert.Equal(t, "wealth", report.Domains[0].Name)
	assert.Equal(t, "fine", report.TierScheme)
	// Leo ascendant: house 1 is Leo with 35 points, Strong on the raw-points scheme
	assert.Equal(t, strength.TierStrong, report.Houses[0].Tier)
	assert.Equal(t, 58, report.Houses[0].Score)
}

func TestAnalyze_Errors(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Analyze(ctx, nil)
	assert.True(t, errors.IsCode(err, errors.CodeInvalidParam))

	req := testutil.SampleAnalysisRequest()
	req.Calibration = "missing"
	_, err = svc.Analyze(ctx, req)
	assert.True(t, errors.IsCode(err, errors.CodeUnknownProfile))

	req = testutil.SampleAnalysisRequest()
	req.Chart.Ascendant = "Leonis"
	_, err = svc.Analyze(ctx, req)
	assert.True(t, errors.IsUnknownSign(err))

	req = testutil.SampleAnalysisRequest()
	req.Chart.Dasha[1].Children[0].End = testutil.Date(2026, 2, 1)
	_, err = svc.Analyze(ctx, req)
	assert.True(t, errors.IsTilingViolation(err))

	req = testutil.SampleAnalysisRequest()
	req.Domains = []string{"fame"}
	_, err = svc.Analyze(ctx, req)
	assert.True(t, errors.IsCode(err, errors.CodeNotFound))

	req = testutil.SampleAnalysisRequest()
	req.Chart.Strength = req.Chart.Strength[:5]
	_, err = svc.Analyze(ctx, req)
	assert.True(t, errors.IsValidation(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = svc.Analyze(cancelled, testutil.SampleAnalysisRequest())
	assert.Error(t, err)
}

func TestAnalyze_CachesThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), redis.RedisConfig{Addr: mr.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{Namespace: "test"}, nil)
	require.NoError(t, err)
	cache := redis.NewRedisCache(client, nil, redis.WithJitter(0))
	svc := newTestService(WithCache(cache, time.Hour), WithMetrics(prometheus.NewAppMetrics(collector)))

	first, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Len(t, mr.Keys(), 1)

	second, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, lordsOf(first), lordsOf(second))
	assert.Equal(t, first.Domains[0].Score, second.Domains[0].Score)

	other := testutil.SampleAnalysisRequest()
	other.TierScheme = "fine"
	third, err := svc.Analyze(context.Background(), other)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Len(t, mr.Keys(), 2)
}

func TestAnalyze_ScoringReloadBypassesCachedReport(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), redis.RedisConfig{Addr: mr.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	svc := newTestService(WithCache(redis.NewRedisCache(client, nil, redis.WithJitter(0)), time.Hour))

	before, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.Equal(t, 85, before.Houses[0].Score)

	// Same profile name, different bounds.
	scoring := config.NewDefaultConfig().Scoring
	calibrations := make(map[string]strength.Calibration, len(scoring.Calibrations))
	for name, cal := range scoring.Calibrations {
		calibrations[name] = cal
	}
	calibrations[config.DefaultCalibration] = strength.Calibration{Min: 0, Max: 60}
	scoring.Calibrations = calibrations
	svc.UpdateScoring(scoring)

	after, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.False(t, after.Cached)
	assert.Equal(t, config.DefaultCalibration, after.Calibration)
	assert.Equal(t, 58, after.Houses[0].Score)
	assert.Len(t, mr.Keys(), 2)

	again, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.True(t, again.Cached)
	assert.Equal(t, 58, again.Houses[0].Score)

	// A domain definition change alone also moves the key.
	scoring.Domains = append([]lifedomain.Definition{}, scoring.Domains...)
	scoring.Domains[0].Houses = []zodiac.HouseNumber{10, 11}
	svc.UpdateScoring(scoring)
	redefined, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.False(t, redefined.Cached)
}

func TestAnalyze_MockCacheHit(t *testing.T) {
	cached := Report{Ascendant: "Leo", Calibration: "sav", TierScheme: "coarse"}
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	mc := new(MockCache)
	mc.On("GetOrSet", mock.Anything, mock.MatchedBy(func(key string) bool {
		return len(key) == len(OpAnalyze)+1+64
	}), mock.AnythingOfType("*analysis.Report"), time.Minute, mock.Anything).
		Run(func(args mock.Arguments) {
			require.NoError(t, json.Unmarshal(payload, args.Get(2)))
		}).
		Return(true, nil).Once()

	svc := newTestService(WithCache(mc, time.Minute))
	report, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	require.NoError(t, err)
	assert.True(t, report.Cached)
	assert.Equal(t, "Leo", report.Ascendant)
	mc.AssertExpectations(t)
}

func TestAnalyze_CacheErrorPropagates(t *testing.T) {
	mc := new(MockCache)
	mc.On("GetOrSet", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New(errors.CodeCacheError, "boom"))

	svc := newTestService(WithCache(mc, time.Minute))
	_, err := svc.Analyze(context.Background(), testutil.SampleAnalysisRequest())
	assert.True(t, errors.IsCode(err, errors.CodeCacheError))
}

func TestHouses(t *testing.T) {
	report, err := newTestService().Houses(context.Background(), &chart.HousesRequest{
		Ascendant: " leo ",
		Strength:  testutil.SampleStrength(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leo", report.Ascendant)
	require.Len(t, report.Houses, 12)
	assert.Equal(t, 35.0, report.Houses[0].Points)
	assert.Equal(t, 25.0, report.Houses[9].Points)

	_, err = newTestService().Houses(context.Background(), &chart.HousesRequest{Ascendant: "Leo", Strength: []float64{1}})
	assert.True(t, errors.IsValidation(err))
}

func TestHouseOf(t *testing.T) {
	info, err := newTestService().HouseOf(context.Background(), "Scorpio", "Leo")
	require.NoError(t, err)
	assert.EqualValues(t, 4, info.House)
	assert.Equal(t, "Mars", info.Ruler)
	assert.NotEmpty(t, info.Label)

	info, err = newTestService().HouseOf(context.Background(), "Leo", "Leo")
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.House)

	_, err = newTestService().HouseOf(context.Background(), "Ophiuchus", "Leo")
	assert.True(t, errors.IsUnknownSign(err))
}

// Every service path that turns a sign into a house must agree with
// zodiac.HouseOf: HouseOf, the house table, natal placements and transits.
func TestHouseResolution_ServicePathsAgree(t *testing.T) {
	scoring := config.NewDefaultConfig().Scoring
	all := make([]zodiac.HouseNumber, 0, zodiac.HouseCount)
	for h := zodiac.HouseNumber(1); h <= zodiac.HouseCount; h++ {
		all = append(all, h)
	}
	scoring.Domains = append(append([]lifedomain.Definition{}, scoring.Domains...),
		lifedomain.Definition{Name: "everything", Houses: all, Aggregate: "mean"})
	svc := NewService(scoring, logging.NewNopLogger(), WithClock(fixedClock))
	ctx := context.Background()

	everySign := make([]chart.Placement, 0, zodiac.SignCount)
	for _, s := range zodiac.AllSigns() {
		everySign = append(everySign, chart.Placement{Name: s.String(), Sign: s.String()})
	}

	for _, asc := range zodiac.AllSigns() {
		want := make(map[string]zodiac.HouseNumber, zodiac.SignCount)
		for _, s := range zodiac.AllSigns() {
			h, err := zodiac.HouseOf(s.String(), asc.String())
			require.NoError(t, err)
			want[s.String()] = h

			info, err := svc.HouseOf(ctx, s.String(), asc.String())
			require.NoError(t, err)
			assert.Equal(t, h, info.House, "HouseOf asc %s sign %s", asc, s)
		}

		req := testutil.SampleAnalysisRequest()
		req.Chart.Ascendant = asc.String()
		req.Chart.Planets = everySign
		req.Transits = everySign
		req.Domains = []string{"everything"}
		report, err := svc.Analyze(ctx, req)
		require.NoError(t, err)

		require.Len(t, report.Houses, zodiac.HouseCount)
		for _, row := range report.Houses {
			assert.Equal(t, want[row.Sign], row.House, "house table asc %s", asc)
		}
		require.Len(t, report.Placements, zodiac.SignCount)
		for _, pl := range report.Placements {
			assert.Equal(t, want[pl.Sign], pl.House, "placement asc %s", asc)
		}
		require.Len(t, report.Domains, 1)
		require.Len(t, report.Domains[0].Transits, zodiac.SignCount)
		for _, tr := range report.Domains[0].Transits {
			assert.Equal(t, want[tr.Sign], tr.House, "transit asc %s", asc)
		}
	}
}

func TestActiveDasha(t *testing.T) {
	report, err := newTestService().ActiveDasha(context.Background(), testutil.SampleDashaRequest())
	require.NoError(t, err)
	assert.False(t, report.Empty)
	require.Len(t, report.Active, 3)
	assert.Equal(t, "Pratyantardasha", report.Active[2].LevelName)

	require.Len(t, report.Nearby, 3)
	assert.Equal(t, "Ketu", report.Nearby[0].Lord)
	assert.Equal(t, "Venus", report.Nearby[1].Lord)
	assert.True(t, report.Nearby[1].Active)
	assert.Equal(t, "Sun", report.Nearby[2].Lord)
}

func TestActiveDasha_Empty(t *testing.T) {
	req := testutil.SampleDashaRequest()
	req.At = testutil.Date(2050, 1, 1)

	report, err := newTestService().ActiveDasha(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, report.Empty)
	assert.Empty(t, report.Active)
	assert.Empty(t, report.Nearby)
}

func TestUpdateScoring(t *testing.T) {
	log := testutil.NewMockLogger()
	svc := NewService(config.NewDefaultConfig().Scoring, log, WithClock(fixedClock))

	scoring := config.NewDefaultConfig().Scoring
	scoring.Calibrations["narrow"] = strength.Calibration{Min: 30, Max: 35}
	scoring.DefaultCalibration = "narrow"
	svc.UpdateScoring(scoring)
	assert.True(t, log.HasMessage("info", "scoring profiles updated"))

	report, err := svc.Houses(context.Background(), &chart.HousesRequest{Ascendant: "Leo", Strength: testutil.SampleStrength()})
	require.NoError(t, err)
	assert.Equal(t, "narrow", report.Calibration)
	assert.Equal(t, 100, report.Houses[0].Score)
}

//Personal.AI order the ending
