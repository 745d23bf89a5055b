package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equitylens/backend/internal/backtest"
	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

type fakeAnalyzer struct {
	analyses map[string]*contracts.Analysis
}

func (f *fakeAnalyzer) Analyze(_ context.Context, symbol string) (*contracts.Analysis, error) {
	a, ok := f.analyses[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return a, nil
}

func (f *fakeAnalyzer) AnalyzeBatch(ctx context.Context, symbols []string) []*contracts.Analysis {
	var results []*contracts.Analysis
	for _, s := range symbols {
		if a, err := f.Analyze(ctx, s); err == nil {
			results = append(results, a)
		}
	}
	return results
}

type fakeBacktester struct {
	results map[string]*backtest.Result
	gotDays int
}

func (f *fakeBacktester) Run(_ context.Context, symbol string, days int) (*backtest.Result, error) {
	f.gotDays = days
	r, ok := f.results[symbol]
	if !ok {
		return nil, errors.New("no data")
	}
	return r, nil
}

func newTestRouter(analyzer *fakeAnalyzer, backtester *fakeBacktester) http.Handler {
	h := NewAnalysisHandler(analyzer, backtester, logger.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/api/analysis/{symbol}", h.GetAnalysis).Methods("GET")
	r.HandleFunc("/api/analysis", h.AnalyzeBatch).Methods("POST")
	r.HandleFunc("/api/backtest/{symbol}", h.GetBacktest).Methods("GET")
	return r
}

func sampleAnalysis(symbol string) *contracts.Analysis {
	return &contracts.Analysis{
		Symbol: symbol,
		Scores: contracts.ScoreBundle{OverallScore: 0.72},
		Recommendation: contracts.TradeRecommendation{
			Rating: contracts.RatingBuy,
		},
	}
}

func TestGetAnalysis(t *testing.T) {
	analyzer := &fakeAnalyzer{analyses: map[string]*contracts.Analysis{
		"TEST.NS": sampleAnalysis("TEST.NS"),
	}}
	router := newTestRouter(analyzer, &fakeBacktester{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/analysis/test.ns", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got contracts.Analysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "TEST.NS", got.Symbol)
	assert.Equal(t, contracts.RatingBuy, got.Recommendation.Rating)
}

func TestGetAnalysis_UpstreamFailure(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeBacktester{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/analysis/MISSING.NS", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestAnalyzeBatch(t *testing.T) {
	analyzer := &fakeAnalyzer{analyses: map[string]*contracts.Analysis{
		"A.NS": sampleAnalysis("A.NS"),
		"B.NS": sampleAnalysis("B.NS"),
	}}
	router := newTestRouter(analyzer, &fakeBacktester{})

	body := `{"symbols": ["a.ns", " b.ns ", "MISSING.NS"]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/analysis", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	var got BatchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Requested)
	assert.Equal(t, 2, got.Completed)
	require.Len(t, got.Results, 2)
}

func TestAnalyzeBatch_BadRequests(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeBacktester{})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"empty symbols", `{"symbols": []}`},
		{"too many symbols", `{"symbols": [` + strings.Repeat(`"X.NS",`, 20) + `"Y.NS"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/analysis", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetBacktest(t *testing.T) {
	backtester := &fakeBacktester{results: map[string]*backtest.Result{
		"TEST.NS": {Symbol: "TEST.NS", Wins: 3, Losses: 1, NetPnL: 12.5},
	}}
	router := newTestRouter(&fakeAnalyzer{}, backtester)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/backtest/TEST.NS?days=60", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 60, backtester.gotDays)

	var got backtest.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.Wins)
	assert.InDelta(t, 12.5, got.NetPnL, 1e-9)
}

func TestGetBacktest_DefaultsAndValidation(t *testing.T) {
	backtester := &fakeBacktester{results: map[string]*backtest.Result{
		"TEST.NS": {Symbol: "TEST.NS"},
	}}
	router := newTestRouter(&fakeAnalyzer{}, backtester)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/backtest/TEST.NS", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultBacktestDays, backtester.gotDays)

	for _, days := range []string{"0", "-5", "abc", "5000"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/backtest/TEST.NS?days="+days, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
	}
}
