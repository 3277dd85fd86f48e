package interfaces

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
	"github.com/Nelly255/Finora/internal/finance/reports"
)

type ReportHandler struct {
	transactions DashboardTransactionService
	categories   CategoryServiceInterface
	budgets      DashboardBudgetService
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewReportHandler(
	transactions DashboardTransactionService,
	categories CategoryServiceInterface,
	budgets DashboardBudgetService,
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ReportHandler {
	return &ReportHandler{
		transactions: transactions,
		categories:   categories,
		budgets:      budgets,
		respondError: respondError,
	}
}

func (h *ReportHandler) categoryNames(userID string) (reports.CategoryNames, error) {
	predefined, err := h.categories.GetAllPredefinedCategories("")
	if err != nil {
		return reports.CategoryNames{}, err
	}
	user, err := h.categories.GetAllUserCategories(userID)
	if err != nil {
		return reports.CategoryNames{}, err
	}

	names := reports.CategoryNames{
		Predefined: make(map[int]string, len(predefined)),
		User:       make(map[int]string, len(user)),
	}
	for _, c := range predefined {
		names.Predefined[c.ID] = c.Name
	}
	for _, c := range user {
		names.User[c.ID] = c.Name
	}
	return names, nil
}

// ExportCSV streams the user's transactions for the requested range as a
// CSV attachment. Range defaults follow the transaction listing endpoints.
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	startDate, endDate, err := parseDateRange(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	transactions, err := h.transactions.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	names, err := h.categoryNames(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	filename := fmt.Sprintf("finora-transactions-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := reports.WriteTransactionsCSV(w, transactions, names); err != nil {
		// Headers are already sent; nothing useful left to do but log-free abort.
		return
	}
}

// MonthlyReport renders the printable HTML report for one month.
func (h *ReportHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
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
		h.respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}

	names, err := h.categoryNames(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	statuses, err := h.budgets.GetBudgetStatus(userID, start.Format("2006-01"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to build report")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := reports.ReportData{
		GeneratedAt:  time.Now(),
		PeriodStart:  start,
		PeriodEnd:    end,
		Transactions: transactions,
		Names:        names,
		Budgets:      statuses,
	}
	if err := reports.WriteHTMLReport(w, data); err != nil {
		return
	}
}
