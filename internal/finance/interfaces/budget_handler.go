package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type BudgetServiceInterface interface {
	CreateBudget(budget *domain.Budget) error
	GetBudgets(userID, month string) ([]domain.Budget, error)
	UpdateBudget(budget domain.Budget) error
	DeleteBudget(budgetID, userID string) error
	GetBudgetStatus(userID, month string) ([]domain.BudgetStatus, error)
}

type BudgetHandler struct {
	service      BudgetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewBudgetHandler(
	service BudgetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *BudgetHandler {
	return &BudgetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// monthParam reads the month query param, defaulting to the current month.
func monthParam(r *http.Request) string {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().Format("2006-01")
	}
	return month
}

func (h *BudgetHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var budget domain.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	budget.UserID = userID

	if err := h.service.CreateBudget(&budget); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create budget")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully created.",
		"data":    budget,
	})
}

func (h *BudgetHandler) GetBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	budgets, err := h.service.GetBudgets(userID, monthParam(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budgets")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budgets retrieved successfully.",
		"data":    budgets,
	})
}

func (h *BudgetHandler) GetBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	statuses, err := h.service.GetBudgetStatus(userID, monthParam(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve budget status")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget status retrieved successfully.",
		"data":    statuses,
	})
}

func (h *BudgetHandler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	budgetID := r.PathValue("budgetID")
	if budgetID == "" {
		h.respondError(w, http.StatusBadRequest, "Budget ID is required")
		return
	}

	var budget domain.Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	budget.ID = budgetID
	budget.UserID = userID

	if err := h.service.UpdateBudget(budget); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, financeErrors.ErrBudgetNotFound) {
			h.respondError(w, http.StatusNotFound, "Budget not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update budget")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully updated.",
		"data":    budget,
	})
}

func (h *BudgetHandler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	budgetID := r.PathValue("budgetID")
	if budgetID == "" {
		h.respondError(w, http.StatusBadRequest, "Budget ID is required")
		return
	}

	if err := h.service.DeleteBudget(budgetID, userID); err != nil {
		if errors.Is(err, financeErrors.ErrBudgetNotFound) {
			h.respondError(w, http.StatusNotFound, "Budget not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete budget")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Budget successfully deleted.",
	})
}
