package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type SavingsGoalServiceInterface interface {
	CreateGoal(goal *domain.SavingsGoal) error
	GetUserGoals(userID string) ([]domain.SavingsGoal, error)
	UpdateGoal(goal domain.SavingsGoal) error
	DeleteGoal(goalID, userID string) error
	Contribute(goalID, userID string, amount float64) (*domain.SavingsGoal, error)
}

type SavingsGoalHandler struct {
	service      SavingsGoalServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSavingsGoalHandler(
	service SavingsGoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SavingsGoalHandler {
	return &SavingsGoalHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type goalResponse struct {
	domain.SavingsGoal
	Progress float64 `json:"progress"`
}

func toGoalResponse(goal domain.SavingsGoal) goalResponse {
	return goalResponse{SavingsGoal: goal, Progress: goal.Progress()}
}

func (h *SavingsGoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var goal domain.SavingsGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal.UserID = userID

	if err := h.service.CreateGoal(&goal); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully created.",
		"data":    toGoalResponse(goal),
	})
}

func (h *SavingsGoalHandler) GetUserGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	goals, err := h.service.GetUserGoals(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve goals")
		return
	}

	responses := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		responses = append(responses, toGoalResponse(goal))
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goals retrieved successfully.",
		"data":    responses,
	})
}

func (h *SavingsGoalHandler) Contribute(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("goalID")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.service.Contribute(goalID, userID, req.Amount)
	if err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, financeErrors.ErrGoalNotFound) {
			h.respondError(w, http.StatusNotFound, "Savings goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to contribute to goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Contribution recorded.",
		"data":    toGoalResponse(*goal),
	})
}

func (h *SavingsGoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("goalID")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	var goal domain.SavingsGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal.ID = goalID
	goal.UserID = userID

	if err := h.service.UpdateGoal(goal); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, financeErrors.ErrGoalNotFound) {
			h.respondError(w, http.StatusNotFound, "Savings goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully updated.",
		"data":    toGoalResponse(goal),
	})
}

func (h *SavingsGoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	goalID := r.PathValue("goalID")
	if goalID == "" {
		h.respondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	if err := h.service.DeleteGoal(goalID, userID); err != nil {
		if errors.Is(err, financeErrors.ErrGoalNotFound) {
			h.respondError(w, http.StatusNotFound, "Savings goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Savings goal successfully deleted.",
	})
}
