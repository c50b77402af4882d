// Package analysis is the application layer of the engine: it resolves
// request payloads against the configured scoring profiles, runs the pure
// domain computations, and memoises complete reports in the cache.
package analysis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/turtacn/Jyotish-Intelligence/internal/config"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/dasha"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/lifedomain"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/strength"
	"github.com/turtacn/Jyotish-Intelligence/internal/domain/zodiac"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

const (
	OpAnalyze     = "analyze"
	OpHouses      = "houses"
	OpActiveDasha = "active_dasha"
	OpHouseOf     = "house_of"

	cacheName = "analysis"
)

// Service is the analysis use-case surface shared by the CLI and HTTP API.
type Service interface {
	Analyze(ctx context.Context, req *chart.AnalysisRequest) (*Report, error)
	Houses(ctx context.Context, req *chart.HousesRequest) (*HousesReport, error)
	ActiveDasha(ctx context.Context, req *chart.DashaRequest) (*DashaReport, error)
	HouseOf(ctx context.Context, sign, ascendant string) (*HouseInfo, error)
	// UpdateScoring swaps the scoring profiles, e.g. after a config reload.
	UpdateScoring(scoring config.ScoringConfig)
}

// ─────────────────────────────────────────────────────────────────────────────
// DTOs
// ─────────────────────────────────────────────────────────────────────────────

// Placement is a natal body with its house from the ascendant.
type Placement struct {
	Name          string             `json:"name"`
	Sign          string             `json:"sign"`
	House         zodiac.HouseNumber `json:"house"`
	Retrograde    bool               `json:"retrograde,omitempty"`
	Nakshatra     string             `json:"nakshatra,omitempty"`
	NakshatraLord string             `json:"nakshatra_lord,omitempty"`
}

// Report is the full analysis of one chart at one instant.
type Report struct {
	Chart       string                `json:"chart,omitempty"`
	Ascendant   string                `json:"ascendant"`
	At          time.Time             `json:"at"`
	Calibration string                `json:"calibration"`
	TierScheme  string                `json:"tier_scheme"`
	Houses      []lifedomain.HouseRow `json:"houses"`
	Placements  []Placement           `json:"placements,omitempty"`
	Dasha       []dasha.ActivePeriod  `json:"dasha"`
	Domains     []lifedomain.Verdict  `json:"domains"`
	Cached      bool                  `json:"cached"`
}

// HousesReport is the twelve-house strength table of one chart.
type HousesReport struct {
	Ascendant   string                `json:"ascendant"`
	Calibration string                `json:"calibration"`
	TierScheme  string                `json:"tier_scheme"`
	Houses      []lifedomain.HouseRow `json:"houses"`
}

// PeriodView is one period rendered for output.
type PeriodView struct {
	Lord      string    `json:"lord"`
	Level     int       `json:"level"`
	LevelName string    `json:"level_name"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Active    bool      `json:"active"`
}

// DashaReport is the active chain at an instant plus the periods around its
// deepest entry.  Empty is true when no period covers At.
type DashaReport struct {
	At     time.Time            `json:"at"`
	Empty  bool                 `json:"empty"`
	Active []dasha.ActivePeriod `json:"active"`
	Nearby []PeriodView         `json:"nearby"`
}

// HouseInfo describes a single sign seen from an ascendant.
type HouseInfo struct {
	Sign      string             `json:"sign"`
	Ascendant string             `json:"ascendant"`
	House     zodiac.HouseNumber `json:"house"`
	Label     string             `json:"label"`
	Types     []zodiac.HouseType `json:"types"`
	Ruler     string             `json:"ruler"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// Option configures a service.
type Option func(*serviceImpl)

// WithClock injects the source of "now" for requests without an instant.
func WithClock(now func() time.Time) Option {
	return func(s *serviceImpl) { s.now = now }
}

// WithCache memoises Analyze results in cache for ttl.
func WithCache(cache redis.Cache, ttl time.Duration) Option {
	return func(s *serviceImpl) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithMetrics records operation counts and latencies on m.
func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

type serviceImpl struct {
	logger   logging.Logger
	metrics  *prometheus.AppMetrics
	cache    redis.Cache
	cacheTTL time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	scoring config.ScoringConfig
}

// NewService builds the analysis service over scoring.
func NewService(scoring config.ScoringConfig, logger logging.Logger, opts ...Option) Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &serviceImpl{
		logger:  logger.Named("analysis"),
		now:     time.Now,
		scoring: scoring,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *serviceImpl) UpdateScoring(scoring config.ScoringConfig) {
	s.mu.Lock()
	s.scoring = scoring
	s.mu.Unlock()
	s.logger.Info("scoring profiles updated",
		logging.Strings("calibrations", scoring.CalibrationNames()),
		logging.Strings("tier_schemes", scoring.TierSchemeNames()))
}

// profile is a resolved calibration and tier scheme.
type profile struct {
	calName    string
	cal        strength.Calibration
	schemeName string
	tiers      strength.TierTable
	domains    []lifedomain.Definition
}

func (s *serviceImpl) resolve(calName, schemeName string) (profile, error) {
	s.mu.RLock()
	scoring := s.scoring
	s.mu.RUnlock()

	if calName == "" {
		calName = scoring.DefaultCalibration
	}
	if schemeName == "" {
		schemeName = scoring.DefaultTierScheme
	}
	cal, err := scoring.Calibration(calName)
	if err != nil {
		return profile{}, err
	}
	tiers, err := scoring.TierScheme(schemeName)
	if err != nil {
		return profile{}, err
	}
	return profile{calName: calName, cal: cal, schemeName: schemeName, tiers: tiers, domains: scoring.Domains}, nil
}

func (s *serviceImpl) instant(at time.Time) time.Time {
	if at.IsZero() {
		return s.now().UTC()
	}
	return at.UTC()
}

func (s *serviceImpl) observe(op string, start time.Time, err error) {
	s.metrics.RecordAnalysis(op, time.Since(start), err)
	if err != nil {
		s.metrics.RecordError("analysis", string(errors.GetCode(err)))
		s.logger.Debug("analysis failed", logging.String("operation", op), logging.Err(err))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Analyze
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Analyze(ctx context.Context, req *chart.AnalysisRequest) (report *Report, err error) {
	start := time.Now()
	defer func() { s.observe(OpAnalyze, start, err) }()

	if req == nil {
		return nil, errors.InvalidParam("analysis request is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "analysis cancelled")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolve(req.Calibration, req.TierScheme)
	if err != nil {
		return nil, err
	}

	// The key covers the resolved instant and the resolved profile values
	// so neither a clock tick nor a scoring reload reuses an old report.
	keyed := *req
	keyed.At = s.instant(req.At)
	keyed.Calibration = p.calName
	keyed.TierScheme = p.schemeName

	if s.cache == nil {
		return s.analyze(&keyed, p)
	}

	key, err := cacheKey(OpAnalyze, analysisKey{
		Request:     &keyed,
		Calibration: p.cal,
		Tiers:       p.tiers,
		Domains:     p.domains,
	})
	if err != nil {
		return nil, err
	}
	var out Report
	hit, err := s.cache.GetOrSet(ctx, key, &out, s.cacheTTL, func(context.Context) (interface{}, error) {
		return s.analyze(&keyed, p)
	})
	if err != nil {
		return nil, err
	}
	s.metrics.RecordCacheAccess(cacheName, hit)
	out.Cached = hit
	return &out, nil
}

func (s *serviceImpl) analyze(req *chart.AnalysisRequest, p profile) (*Report, error) {
	asc, err := zodiac.ParseSign(req.Chart.Ascendant)
	if err != nil {
		return nil, err
	}
	defs, err := lifedomain.SelectDefinitions(p.domains, req.Domains)
	if err != nil {
		return nil, err
	}

	houses, err := lifedomain.HouseTable(req.Chart.Strength, asc, p.cal, p.tiers)
	if err != nil {
		return nil, err
	}
	placements, err := placementsOf(req.Chart.Planets, asc)
	if err != nil {
		return nil, err
	}

	forest, err := dasha.FromPayload(req.Chart.Dasha)
	if err != nil {
		return nil, err
	}
	chain := dasha.ActiveChain(forest, req.At)
	if chain.Empty() && len(forest) > 0 {
		s.metrics.RecordEmptyChain()
	}

	verdicts, err := lifedomain.Evaluate(lifedomain.Input{
		Ascendant:   asc,
		Natal:       req.Chart.Strength,
		Transits:    lifedomain.TransitsFromPayload(req.Transits),
		Chain:       chain,
		Calibration: p.cal,
		Tiers:       p.tiers,
	}, defs)
	if err != nil {
		return nil, err
	}
	for _, v := range verdicts {
		s.metrics.RecordDomainTier(v.Name, string(v.Tier))
	}

	s.logger.Debug("chart analysed",
		logging.String("ascendant", asc.String()),
		logging.Time("at", req.At),
		logging.Strings("chain", chain.Lords()),
		logging.Int("domains", len(verdicts)))

	return &Report{
		Chart:       req.Chart.Name,
		Ascendant:   asc.String(),
		At:          req.At,
		Calibration: p.calName,
		TierScheme:  p.schemeName,
		Houses:      houses,
		Placements:  placements,
		Dasha:       chain.Describe(req.At),
		Domains:     verdicts,
	}, nil
}

func placementsOf(ps []chart.Placement, asc zodiac.Sign) ([]Placement, error) {
	if len(ps) == 0 {
		return nil, nil
	}
	out := make([]Placement, len(ps))
	for i, p := range ps {
		sign, err := zodiac.ParseSign(p.Sign)
		if err != nil {
			return nil, err
		}
		pl := Placement{
			Name:       p.Name,
			Sign:       sign.String(),
			House:      zodiac.HouseOfSign(sign, asc),
			Retrograde: p.Retrograde,
		}
		if p.Nakshatra != "" {
			idx, err := zodiac.NakshatraIndexOf(p.Nakshatra)
			if err != nil {
				return nil, err
			}
			pl.Nakshatra = zodiac.NakshatraName(idx)
			pl.NakshatraLord = string(zodiac.NakshatraLord(idx))
		}
		out[i] = pl
	}
	return out, nil
}

// analysisKey is the cached identity of an analysis: the request plus the
// profile values it resolved to, not just their names.
type analysisKey struct {
	Request     *chart.AnalysisRequest  `json:"request"`
	Calibration strength.Calibration    `json:"calibration"`
	Tiers       strength.TierTable      `json:"tiers"`
	Domains     []lifedomain.Definition `json:"domains"`
}

// cacheKey hashes the canonical JSON of v under op.
func cacheKey(op string, v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "cache key")
	}
	sum := sha256.Sum256(data)
	return op + ":" + hex.EncodeToString(sum[:]), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Houses / HouseOf
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) Houses(ctx context.Context, req *chart.HousesRequest) (report *HousesReport, err error) {
	start := time.Now()
	defer func() { s.observe(OpHouses, start, err) }()

	if req == nil {
		return nil, errors.InvalidParam("houses request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolve(req.Calibration, req.TierScheme)
	if err != nil {
		return nil, err
	}
	asc, err := zodiac.ParseSign(req.Ascendant)
	if err != nil {
		return nil, err
	}
	rows, err := lifedomain.HouseTable(req.Strength, asc, p.cal, p.tiers)
	if err != nil {
		return nil, err
	}
	return &HousesReport{
		Ascendant:   asc.String(),
		Calibration: p.calName,
		TierScheme:  p.schemeName,
		Houses:      rows,
	}, nil
}

func (s *serviceImpl) HouseOf(ctx context.Context, sign, ascendant string) (info *HouseInfo, err error) {
	start := time.Now()
	defer func() { s.observe(OpHouseOf, start, err) }()

	target, err := zodiac.ParseSign(sign)
	if err != nil {
		return nil, err
	}
	asc, err := zodiac.ParseSign(ascendant)
	if err != nil {
		return nil, err
	}
	h := zodiac.HouseOfSign(target, asc)
	return &HouseInfo{
		Sign:      target.String(),
		Ascendant: asc.String(),
		House:     h,
		Label:     zodiac.DomainLabel(h),
		Types:     zodiac.HouseTypes(h),
		Ruler:     string(zodiac.RulerOf(target)),
	}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ActiveDasha
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) ActiveDasha(ctx context.Context, req *chart.DashaRequest) (report *DashaReport, err error) {
	start := time.Now()
	defer func() { s.observe(OpActiveDasha, start, err) }()

	if req == nil {
		return nil, errors.InvalidParam("dasha request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	forest, err := dasha.FromPayload(req.Dasha)
	if err != nil {
		return nil, err
	}
	at := s.instant(req.At)
	chain := dasha.ActiveChain(forest, at)

	out := &DashaReport{
		At:     at,
		Empty:  chain.Empty(),
		Active: chain.Describe(at),
		Nearby: []PeriodView{},
	}
	if chain.Empty() {
		s.metrics.RecordEmptyChain()
		return out, nil
	}

	deepest := chain.Deepest()
	for _, n := range dasha.Window(deepest, req.Window, req.Window) {
		out.Nearby = append(out.Nearby, PeriodView{
			Lord:      n.Lord(),
			Level:     n.Level(),
			LevelName: n.LevelName(),
			Start:     n.Start(),
			End:       n.End(),
			Active:    n == deepest,
		})
	}
	return out, nil
}

//Personal.AI order the ending
