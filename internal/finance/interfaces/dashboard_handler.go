package interfaces

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Nelly255/Finora/internal/alerts"
	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/domain"
	"github.com/Nelly255/Finora/internal/health"
)

type DashboardTransactionService interface {
	GetMonthlyAggregates(userID string, startDate, endDate time.Time) ([]application.MonthlyTotals, error)
	GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error)
	GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error)
}

type DashboardBudgetService interface {
	GetBudgetStatus(userID, month string) ([]domain.BudgetStatus, error)
}

type DashboardHandler struct {
	transactions DashboardTransactionService
	budgets      DashboardBudgetService
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewDashboardHandler(
	transactions DashboardTransactionService,
	budgets DashboardBudgetService,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *DashboardHandler {
	return &DashboardHandler{
		transactions: transactions,
		budgets:      budgets,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// monthStart parses the month query param ("2006-01"), defaulting to the
// current month, and returns the first instant of that month in UTC.
func monthStart(r *http.Request) (time.Time, bool) {
	param := r.URL.Query().Get("month")
	if param == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), true
	}
	parsed, err := time.Parse("2006-01", param)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	start, ok := monthStart(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
		return
	}
	end := start.AddDate(0, 1, 0)

	transactions, err := h.transactions.GetTransactionsInDateRange(userID, start, end)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve dashboard data")
		return
	}

	var income, expenses float64
	for _, t := range transactions {
		if t.Type == domain.TypeIncome {
			income += t.Amount
		} else if t.Type == domain.TypeExpense {
			expenses += t.Amount
		}
	}

	expensesByCategory, err := h.transactions.GetTransactionSummaryByCategory(userID, start, end, domain.TypeExpense)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve dashboard data")
		return
	}
	if expensesByCategory == nil {
		expensesByCategory = []domain.TransactionByCategorySummary{}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Dashboard overview retrieved successfully.",
		"data": map[string]interface{}{
			"month":                start.Format("2006-01"),
			"income":               income,
			"expenses":             expenses,
			"net":                  income - expenses,
			"expenses_by_category": expensesByCategory,
		},
	})
}

func (h *DashboardHandler) GetHealthScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	opts := health.Options{}
	if fund := r.URL.Query().Get("emergency_fund"); fund != "" {
		parsed, err := strconv.ParseFloat(fund, 64)
		if err != nil || parsed < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid emergency_fund value")
			return
		}
		opts.EmergencyFundAmount = parsed
	}
	if lookback := r.URL.Query().Get("lookback_months"); lookback != "" {
		parsed, err := strconv.Atoi(lookback)
		if err != nil || parsed < 1 || parsed > 24 {
			h.respondError(w, http.StatusBadRequest, "Invalid lookback_months value")
			return
		}
		opts.LookbackMonths = parsed
	}

	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	start := end.AddDate(-1, 0, 0)

	totals, err := h.transactions.GetMonthlyAggregates(userID, start, end)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to compute health score")
		return
	}

	months := make([]health.MonthlyAggregate, 0, len(totals))
	for _, t := range totals {
		months = append(months, health.MonthlyAggregate{
			Month:    t.Month,
			Income:   t.Income,
			Expenses: t.Expenses,
		})
	}

	result := health.Calculate(months, opts)

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Health score computed successfully.",
		"data":    result,
	})
}

func (h *DashboardHandler) GetAlerts(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	start, ok := monthStart(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
		return
	}
	end := start.AddDate(0, 1, 0)

	transactions, err := h.transactions.GetTransactionsInDateRange(userID, start, end)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to evaluate alerts")
		return
	}

	statuses, err := h.budgets.GetBudgetStatus(userID, start.Format("2006-01"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to evaluate alerts")
		return
	}

	budgetLines := make([]alerts.BudgetLine, 0, len(statuses))
	for _, status := range statuses {
		budgetLines = append(budgetLines, alerts.BudgetLine{
			Category: status.CategoryName,
			Limit:    status.Budget.Limit,
			Spent:    status.Spent,
		})
	}

	evaluated := alerts.Evaluate(transactions, start, budgetLines)

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Alerts evaluated successfully.",
		"data":    evaluated,
	})
}
