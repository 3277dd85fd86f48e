package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/domain"
)

type fakeDashboardTransactionService struct {
	months       []application.MonthlyTotals
	transactions []domain.Transaction
	summaries    []domain.TransactionByCategorySummary
}

func (f *fakeDashboardTransactionService) GetMonthlyAggregates(_ string, _, _ time.Time) ([]application.MonthlyTotals, error) {
	return f.months, nil
}

func (f *fakeDashboardTransactionService) GetTransactionsInDateRange(_ string, start, end time.Time) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range f.transactions {
		if !t.Date.Before(start) && t.Date.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeDashboardTransactionService) GetTransactionSummaryByCategory(_ string, _, _ time.Time, _ string) ([]domain.TransactionByCategorySummary, error) {
	return f.summaries, nil
}

type fakeDashboardBudgetService struct {
	statuses []domain.BudgetStatus
}

func (f *fakeDashboardBudgetService) GetBudgetStatus(_, _ string) ([]domain.BudgetStatus, error) {
	return f.statuses, nil
}

func TestDashboardGetOverview(t *testing.T) {
	transactions := &fakeDashboardTransactionService{
		transactions: []domain.Transaction{
			{Amount: 3000, Type: domain.TypeIncome, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: 800, Type: domain.TypeExpense, Date: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
			{Amount: 100, Type: domain.TypeExpense, Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
		summaries: []domain.TransactionByCategorySummary{
			{CategoryID: 1, CategoryName: "Groceries", Total: 800, Count: 1},
		},
	}
	handler := NewDashboardHandler(transactions, &fakeDashboardBudgetService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetOverview(w, authedRequest(http.MethodGet, "/api/dashboard?month=2024-05", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			Month    string  `json:"month"`
			Income   float64 `json:"income"`
			Expenses float64 `json:"expenses"`
			Net      float64 `json:"net"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "2024-05", response.Data.Month)
	assert.Equal(t, 3000.0, response.Data.Income)
	assert.Equal(t, 800.0, response.Data.Expenses)
	assert.Equal(t, 2200.0, response.Data.Net)
}

func TestDashboardGetOverview_InvalidMonth(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardTransactionService{}, &fakeDashboardBudgetService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetOverview(w, authedRequest(http.MethodGet, "/api/dashboard?month=May-2024", nil))
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDashboardGetHealthScore(t *testing.T) {
	transactions := &fakeDashboardTransactionService{
		months: []application.MonthlyTotals{
			{Month: "2024-04", Income: 3000, Expenses: 1800},
			{Month: "2024-05", Income: 3000, Expenses: 1900},
		},
	}
	handler := NewDashboardHandler(transactions, &fakeDashboardBudgetService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetHealthScore(w, authedRequest(http.MethodGet, "/api/dashboard/health?emergency_fund=12000", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			Score                  int  `json:"score"`
			DeltaFromPreviousMonth *int `json:"delta_from_previous_month"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Greater(t, response.Data.Score, 50)
	assert.NotNil(t, response.Data.DeltaFromPreviousMonth)
}

func TestDashboardGetHealthScore_InvalidParams(t *testing.T) {
	handler := NewDashboardHandler(&fakeDashboardTransactionService{}, &fakeDashboardBudgetService{}, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetHealthScore(w, authedRequest(http.MethodGet, "/api/dashboard/health?emergency_fund=-5", nil))
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)

	w = httptest.NewRecorder()
	handler.GetHealthScore(w, authedRequest(http.MethodGet, "/api/dashboard/health?lookback_months=0", nil))
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDashboardGetAlerts(t *testing.T) {
	transactions := &fakeDashboardTransactionService{
		transactions: []domain.Transaction{
			{Amount: 1000, Type: domain.TypeIncome, Date: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
			{Amount: 1400, Type: domain.TypeExpense, Date: time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC), Description: "Rent"},
		},
	}
	budgets := &fakeDashboardBudgetService{
		statuses: []domain.BudgetStatus{
			{
				Budget:       domain.Budget{Limit: 1000, CategoryID: 1, Month: "2024-05"},
				CategoryName: "Housing",
				Spent:        1400,
				Remaining:    -400,
				OverLimit:    true,
			},
		},
	}
	handler := NewDashboardHandler(transactions, budgets, respondJSON, respondError)

	w := httptest.NewRecorder()
	handler.GetAlerts(w, authedRequest(http.MethodGet, "/api/dashboard/alerts?month=2024-05", nil))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []struct {
			Code     string `json:"code"`
			Severity string `json:"severity"`
			Message  string `json:"message"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))

	codes := make([]string, len(response.Data))
	for i, a := range response.Data {
		codes[i] = a.Code
	}
	assert.Contains(t, codes, "overspend")
	assert.Contains(t, codes, "budget_exceeded")
	assert.Equal(t, "summary", codes[len(codes)-1])
}
