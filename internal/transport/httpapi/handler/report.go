package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/nmantri/spendwise/internal/ledger"
	"github.com/nmantri/spendwise/internal/report"
	"github.com/nmantri/spendwise/internal/settings"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
)

// LedgerLoader loads a user's full ledger for aggregation.
type LedgerLoader interface {
	Load(ctx context.Context, user string) ([]ledger.Transaction, error)
}

// SettingsLoader loads a user's settings for display alongside reports.
type SettingsLoader interface {
	Load(ctx context.Context, user string) (settings.Settings, error)
}

// ReportHandler serves the dashboard summary and analysis breakdowns.
type ReportHandler struct {
	ledgers  LedgerLoader
	settings SettingsLoader
}

// NewReportHandler creates a new report handler
func NewReportHandler(ledgers LedgerLoader, settings SettingsLoader) *ReportHandler {
	return &ReportHandler{ledgers: ledgers, settings: settings}
}

// SummaryResponse is the dashboard payload: totals, the five most recent
// records, and the per-type monthly series.
type SummaryResponse struct {
	Summary  report.Summary                              `json:"summary"`
	Latest   []ledger.Transaction                        `json:"latest_records"`
	Monthly  map[ledger.Type]map[string]decimal.Decimal  `json:"monthly_data"`
	Settings settings.Settings                           `json:"settings"`
}

// AnalysisResponse carries the chart breakdowns.
type AnalysisResponse struct {
	CategoryData  map[string]decimal.Decimal                 `json:"category_data"`
	MonthlyTrends map[string]map[ledger.Type]decimal.Decimal `json:"monthly_trends"`
	YearlyTrends  map[string]map[ledger.Type]decimal.Decimal `json:"yearly_trends"`
	Settings      settings.Settings                          `json:"settings"`
}

// GetSummary handles GET /summary
func (h *ReportHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := h.ledgers.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	prefs, err := h.settings.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}

	latest := report.RecentN(txs, 5)
	if latest == nil {
		latest = []ledger.Transaction{}
	}

	respondJSON(w, SummaryResponse{
		Summary:  report.Summarize(txs),
		Latest:   latest,
		Monthly:  report.ByMonth(txs),
		Settings: prefs,
	}, http.StatusOK)
}

// GetAnalysis handles GET /analysis
func (h *ReportHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	txs, err := h.ledgers.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	prefs, err := h.settings.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}

	respondJSON(w, AnalysisResponse{
		CategoryData:  report.SpendByCategory(txs),
		MonthlyTrends: report.ByMonthAndType(txs),
		YearlyTrends:  report.ByYearAndType(txs),
		Settings:      prefs,
	}, http.StatusOK)
}
