package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/Jyotish-Intelligence/internal/application/analysis"
	"github.com/turtacn/Jyotish-Intelligence/internal/config"
	"github.com/turtacn/Jyotish-Intelligence/internal/testutil"
	"github.com/turtacn/Jyotish-Intelligence/pkg/errors"
	"github.com/turtacn/Jyotish-Intelligence/pkg/types/chart"
)

func init() { gin.SetMode(gin.TestMode) }

// MockService is a testify mock of analysis.Service.
type MockService struct {
	mock.Mock
}

func (m *MockService) Analyze(ctx context.Context, req *chart.AnalysisRequest) (*analysis.Report, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Report), args.Error(1)
}

func (m *MockService) Houses(ctx context.Context, req *chart.HousesRequest) (*analysis.HousesReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.HousesReport), args.Error(1)
}

func (m *MockService) ActiveDasha(ctx context.Context, req *chart.DashaRequest) (*analysis.DashaReport, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.DashaReport), args.Error(1)
}

func (m *MockService) HouseOf(ctx context.Context, sign, ascendant string) (*analysis.HouseInfo, error) {
	args := m.Called(ctx, sign, ascendant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.HouseInfo), args.Error(1)
}

func (m *MockService) UpdateScoring(scoring config.ScoringConfig) { m.Called(scoring) }

func newEngine(h *AnalysisHandler) *gin.Engine {
	r := gin.New()
	r.POST("/analysis", h.Analyze)
	r.POST("/houses", h.Houses)
	r.POST("/dasha/active", h.ActiveDasha)
	r.GET("/houses/:sign", h.HouseOf)
	return r
}

func realHandler() *AnalysisHandler {
	svc := analysis.NewService(config.NewDefaultConfig().Scoring, nil,
		analysis.WithClock(func() time.Time { return testutil.SampleInstant }))
	return NewAnalysisHandler(svc, nil)
}

func do(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAnalyze_OK(t *testing.T) {
	rec := do(newEngine(realHandler()), http.MethodPost, "/analysis", testutil.SampleAnalysisRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report analysis.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Leo", report.Ascendant)
	assert.Len(t, report.Houses, 12)
	require.Len(t, report.Dasha, 3)
	assert.Equal(t, "Venus", report.Dasha[2].Lord)
}

func TestAnalyze_YAMLBody(t *testing.T) {
	body := `
chart:
  ascendant: Leo
  strength: [30, 25, 28, 22, 35, 20, 27, 24, 32, 19, 26, 31]
at: 2027-01-01T00:00:00Z
domains: [career]
`
	req := httptest.NewRequest(http.MethodPost, "/analysis", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/yaml")
	rec := httptest.NewRecorder()
	newEngine(realHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report analysis.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Len(t, report.Domains, 1)
	assert.Equal(t, 35, report.Domains[0].Score)
}

func TestAnalyze_ErrorMapping(t *testing.T) {
	r := newEngine(realHandler())

	rec := do(r, http.MethodPost, "/analysis", map[string]interface{}{"chart": map[string]interface{}{"ascendant": "Leo"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, string(errors.CodeValidation), decodeError(t, rec).Code)

	req := testutil.SampleAnalysisRequest()
	req.Chart.Ascendant = "Leonis"
	rec = do(r, http.MethodPost, "/analysis", req)
	assert.Equal(t, errors.HTTPStatus(errors.CodeUnknownSign), rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, string(errors.CodeUnknownSign), resp.Code)
	assert.Contains(t, resp.Detail, "Leonis")

	req = testutil.SampleAnalysisRequest()
	req.Chart.Dasha[1].Children[2].Start = testutil.Date(2028, 10, 1)
	rec = do(r, http.MethodPost, "/analysis", req)
	assert.Equal(t, string(errors.CodeTilingViolation), decodeError(t, rec).Code)

	rec = do(r, http.MethodPost, "/analysis", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyze_InternalErrorIsMasked(t *testing.T) {
	svc := new(MockService)
	svc.On("Analyze", mock.Anything, mock.Anything).Return(nil, errors.Internal("redis exploded"))
	log := testutil.NewMockLogger()

	rec := do(newEngine(NewAnalysisHandler(svc, log)), http.MethodPost, "/analysis", testutil.SampleAnalysisRequest())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, rec.Body.String(), "redis exploded")
	assert.True(t, log.HasMessage("error", "request failed"))
	svc.AssertExpectations(t)
}

func TestHouses_OK(t *testing.T) {
	rec := do(newEngine(realHandler()), http.MethodPost, "/houses", chart.HousesRequest{
		Ascendant:  "Leo",
		Strength:   testutil.SampleStrength(),
		TierScheme: "fine",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report analysis.HousesReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "fine", report.TierScheme)
	assert.Equal(t, "Strong", string(report.Houses[0].Tier))
}

func TestHouses_UnknownProfile(t *testing.T) {
	rec := do(newEngine(realHandler()), http.MethodPost, "/houses", chart.HousesRequest{
		Ascendant:   "Leo",
		Strength:    testutil.SampleStrength(),
		Calibration: "nope",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(errors.CodeUnknownProfile), decodeError(t, rec).Code)
}

func TestActiveDasha_OK(t *testing.T) {
	rec := do(newEngine(realHandler()), http.MethodPost, "/dasha/active", testutil.SampleDashaRequest())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report analysis.DashaReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.False(t, report.Empty)
	assert.Len(t, report.Active, 3)
	assert.Len(t, report.Nearby, 3)
}

func TestHouseOf(t *testing.T) {
	r := newEngine(realHandler())

	rec := do(r, http.MethodGet, "/houses/Scorpio?ascendant=Leo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info analysis.HouseInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.EqualValues(t, 4, info.House)

	rec = do(r, http.MethodGet, "/houses/Scorpio", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(r, http.MethodGet, "/houses/Ophiuchus?ascendant=Leo", nil)
	assert.Equal(t, string(errors.CodeUnknownSign), decodeError(t, rec).Code)
}

func TestHealth(t *testing.T) {
	healthy := CheckerFunc("redis", func(context.Context) error { return nil })
	broken := CheckerFunc("upstream", func(context.Context) error { return errors.Internal("down") })

	r := gin.New()
	h := NewHealthHandler("test", healthy)
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)

	rec := do(r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"alive"`)

	rec = do(r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	r = gin.New()
	h = NewHealthHandler("test", healthy, broken)
	r.GET("/readyz", h.Readiness)
	rec = do(r, http.MethodGet, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["upstream"].Status)
	assert.Equal(t, "healthy", resp.Components["redis"].Status)
}

//Personal.AI order the ending
