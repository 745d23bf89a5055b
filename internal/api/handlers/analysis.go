// Package handlers implements the HTTP API handlers.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/equitylens/backend/internal/backtest"
	"github.com/equitylens/backend/internal/contracts"
	"github.com/equitylens/backend/pkg/logger"
)

const (
	defaultBacktestDays = 120
	maxBacktestDays     = 1000
	maxBatchSymbols     = 20
)

// Analyzer runs the analysis pipeline for the API.
type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*contracts.Analysis, error)
	AnalyzeBatch(ctx context.Context, symbols []string) []*contracts.Analysis
}

// Backtester replays the strategy over history for the API.
type Backtester interface {
	Run(ctx context.Context, symbol string, lookbackDays int) (*backtest.Result, error)
}

// AnalysisHandler handles analysis and backtest endpoints.
type AnalysisHandler struct {
	analyzer   Analyzer
	backtester Backtester
	logger     *logger.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(analyzer Analyzer, backtester Backtester, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer:   analyzer,
		backtester: backtester,
		logger:     log,
	}
}

// GetAnalysis runs a full analysis for one symbol.
// GET /api/analysis/{symbol}
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).Error("Analysis failed")
		respondError(w, http.StatusBadGateway, "Failed to analyze symbol")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// BatchRequest is the body of a batch analysis request.
type BatchRequest struct {
	Symbols []string `json:"symbols"`
}

// BatchResponse summarizes a batch run.
type BatchResponse struct {
	Requested int                   `json:"requested"`
	Completed int                   `json:"completed"`
	Results   []*contracts.Analysis `json:"results"`
}

// AnalyzeBatch runs analyses for a list of symbols, skipping any that
// fail.
// POST /api/analysis
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Symbols) == 0 {
		respondError(w, http.StatusBadRequest, "symbols is required")
		return
	}
	if len(req.Symbols) > maxBatchSymbols {
		respondError(w, http.StatusBadRequest, "too many symbols in one batch")
		return
	}

	symbols := make([]string, 0, len(req.Symbols))
	for _, s := range req.Symbols {
		if trimmed := strings.ToUpper(strings.TrimSpace(s)); trimmed != "" {
			symbols = append(symbols, trimmed)
		}
	}

	results := h.analyzer.AnalyzeBatch(r.Context(), symbols)

	respondJSON(w, http.StatusOK, BatchResponse{
		Requested: len(symbols),
		Completed: len(results),
		Results:   results,
	})
}

// GetBacktest replays the strategy for one symbol.
// GET /api/backtest/{symbol}?days=120
func (h *AnalysisHandler) GetBacktest(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	days := defaultBacktestDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxBacktestDays {
			respondError(w, http.StatusBadRequest, "days must be a positive integer up to 1000")
			return
		}
		days = parsed
	}

	result, err := h.backtester.Run(r.Context(), symbol, days)
	if err != nil {
		h.logger.WithError(err).Error("Backtest failed")
		respondError(w, http.StatusBadGateway, "Failed to backtest symbol")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
