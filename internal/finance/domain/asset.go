package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nelly255/Finora/internal/finance/errors"
)

// Asset is a depreciating possession tracked with straight-line depreciation:
// the same amount (cost x annual rate) is written off every year until the
// net book value reaches the salvage value.
type Asset struct {
	ID                string    `json:"id"`
	UserID            string    `json:"-"`
	Name              string    `json:"name"`
	Cost              float64   `json:"cost"`
	PurchaseDate      time.Time `json:"purchase_date"`
	AnnualRatePercent float64   `json:"annual_rate_percent"`
	SalvageValue      float64   `json:"salvage_value"`
}

// DepreciationLine is one year of an asset's depreciation schedule.
// Amounts are decimals so totals render exactly in reports.
type DepreciationLine struct {
	Year         int             `json:"year"`
	Opening      decimal.Decimal `json:"opening"`
	Depreciation decimal.Decimal `json:"depreciation"`
	Closing      decimal.Decimal `json:"closing"`
}

type AssetRepository interface {
	Save(asset Asset) error
	FindByUser(userID string) ([]Asset, error)
	FindByID(assetID, userID string) (*Asset, error)
	Update(asset Asset) error
	Delete(assetID, userID string) error
}

func (a *Asset) Validate() error {
	if a.Name == "" {
		return errors.NewValidationError("Asset name is required")
	}
	if a.Cost <= 0 {
		return errors.NewValidationError("Asset cost must be greater than zero")
	}
	if a.AnnualRatePercent <= 0 || a.AnnualRatePercent > 100 {
		return errors.NewValidationError("Annual rate must be between 0 and 100 percent")
	}
	if a.SalvageValue < 0 || a.SalvageValue >= a.Cost {
		return errors.NewValidationError("Salvage value must be non-negative and below cost")
	}
	if a.PurchaseDate.IsZero() {
		return errors.NewValidationError("Purchase date is required")
	}
	return nil
}

// Schedule builds the full straight-line depreciation schedule. The last
// line is clamped so the closing value never drops below salvage.
func (a *Asset) Schedule() []DepreciationLine {
	cost := decimal.NewFromFloat(a.Cost).Round(2)
	salvage := decimal.NewFromFloat(a.SalvageValue).Round(2)
	annual := cost.Mul(decimal.NewFromFloat(a.AnnualRatePercent)).Div(decimal.NewFromInt(100)).Round(2)
	if annual.IsZero() {
		return nil
	}

	var lines []DepreciationLine
	opening := cost
	year := a.PurchaseDate.Year()
	for opening.GreaterThan(salvage) {
		dep := annual
		if opening.Sub(dep).LessThan(salvage) {
			dep = opening.Sub(salvage)
		}
		closing := opening.Sub(dep)
		lines = append(lines, DepreciationLine{
			Year:         year,
			Opening:      opening,
			Depreciation: dep,
			Closing:      closing,
		})
		opening = closing
		year++
	}
	return lines
}

// NetBookValue returns the asset's NBV as of the given time: cost minus the
// accumulated depreciation of all completed schedule years.
func (a *Asset) NetBookValue(asOf time.Time) decimal.Decimal {
	cost := decimal.NewFromFloat(a.Cost).Round(2)
	if asOf.Before(a.PurchaseDate) {
		return cost
	}
	nbv := cost
	for _, line := range a.Schedule() {
		if line.Year >= asOf.Year() {
			break
		}
		nbv = line.Closing
	}
	return nbv
}
