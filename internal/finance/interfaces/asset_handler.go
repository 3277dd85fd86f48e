package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type AssetServiceInterface interface {
	CreateAsset(asset *domain.Asset) error
	GetUserAssets(userID string, asOf time.Time) ([]application.AssetWithValue, error)
	GetDepreciationSchedule(assetID, userID string) ([]domain.DepreciationLine, error)
	UpdateAsset(asset domain.Asset) error
	DeleteAsset(assetID, userID string) error
}

type AssetHandler struct {
	service      AssetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewAssetHandler(
	service AssetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *AssetHandler {
	return &AssetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	asset.UserID = userID

	if err := h.service.CreateAsset(&asset); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully created.",
		"data":    asset,
	})
}

func (h *AssetHandler) GetUserAssets(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	assets, err := h.service.GetUserAssets(userID, time.Now())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve assets")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Assets retrieved successfully.",
		"data":    assets,
	})
}

func (h *AssetHandler) GetDepreciationSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID := r.PathValue("assetID")
	if assetID == "" {
		h.respondError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}

	schedule, err := h.service.GetDepreciationSchedule(assetID, userID)
	if err != nil {
		if errors.Is(err, financeErrors.ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve depreciation schedule")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Depreciation schedule retrieved successfully.",
		"data":    schedule,
	})
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID := r.PathValue("assetID")
	if assetID == "" {
		h.respondError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}

	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	asset.ID = assetID
	asset.UserID = userID

	if err := h.service.UpdateAsset(asset); err != nil {
		if financeErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, financeErrors.ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update asset")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully updated.",
		"data":    asset,
	})
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	assetID := r.PathValue("assetID")
	if assetID == "" {
		h.respondError(w, http.StatusBadRequest, "Asset ID is required")
		return
	}

	if err := h.service.DeleteAsset(assetID, userID); err != nil {
		if errors.Is(err, financeErrors.ErrAssetNotFound) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully deleted.",
	})
}
