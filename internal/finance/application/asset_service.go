package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

type AssetService struct {
	repo domain.AssetRepository
}

func NewAssetService(repo domain.AssetRepository) *AssetService {
	return &AssetService{repo: repo}
}

func (s *AssetService) CreateAsset(asset *domain.Asset) error {
	asset.ID = uuid.NewString()
	if err := asset.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*asset)
}

// AssetWithValue decorates an asset with its current NBV for list responses.
type AssetWithValue struct {
	domain.Asset
	NetBookValue decimal.Decimal `json:"net_book_value"`
}

func (s *AssetService) GetUserAssets(userID string, asOf time.Time) ([]AssetWithValue, error) {
	assets, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	out := make([]AssetWithValue, 0, len(assets))
	for _, asset := range assets {
		out = append(out, AssetWithValue{
			Asset:        asset,
			NetBookValue: asset.NetBookValue(asOf),
		})
	}
	return out, nil
}

func (s *AssetService) GetDepreciationSchedule(assetID, userID string) ([]domain.DepreciationLine, error) {
	asset, err := s.repo.FindByID(assetID, userID)
	if err != nil {
		return nil, err
	}
	return asset.Schedule(), nil
}

func (s *AssetService) UpdateAsset(asset domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return s.repo.Update(asset)
}

func (s *AssetService) DeleteAsset(assetID, userID string) error {
	return s.repo.Delete(assetID, userID)
}
