package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type SubscriptionServiceInterface interface {
	CreateSubscription(subscription *domain.Subscription) error
	GetUserSubscriptions(userID string) ([]domain.Subscription, error)
	UpdateSubscription(subscription domain.Subscription) error
	DeleteSubscription(subscriptionID, userID string) error
}

type SubscriptionHandler struct {
	service      SubscriptionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewSubscriptionHandler(
	service SubscriptionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *SubscriptionHandler {
	return &SubscriptionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var subscription domain.Subscription
	if err := json.NewDecoder(r.Body).Decode(&subscription); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	subscription.UserID = userID

	if err := h.service.CreateSubscription(&subscription); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Subscription successfully created.",
		"data":    subscription,
	})
}

func (h *SubscriptionHandler) GetUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	subscriptions, err := h.service.GetUserSubscriptions(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Subscriptions retrieved successfully.",
		"data":    subscriptions,
	})
}

func (h *SubscriptionHandler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subscriptionID := r.PathValue("subscriptionID")
	if subscriptionID == "" {
		h.respondError(w, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	var subscription domain.Subscription
	if err := json.NewDecoder(r.Body).Decode(&subscription); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	subscription.ID = subscriptionID
	subscription.UserID = userID

	if err := h.service.UpdateSubscription(subscription); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, financeErrors.ErrSubscriptionNotFound) {
			h.respondError(w, http.StatusNotFound, "Subscription not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update subscription")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Subscription successfully updated.",
		"data":    subscription,
	})
}

func (h *SubscriptionHandler) DeleteSubscription(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	subscriptionID := r.PathValue("subscriptionID")
	if subscriptionID == "" {
		h.respondError(w, http.StatusBadRequest, "Subscription ID is required")
		return
	}

	if err := h.service.DeleteSubscription(subscriptionID, userID); err != nil {
		if errors.Is(err, financeErrors.ErrSubscriptionNotFound) {
			h.respondError(w, http.StatusNotFound, "Subscription not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete subscription")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Subscription successfully deleted.",
	})
}
