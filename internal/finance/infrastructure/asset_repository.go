package infrastructure

import (
	"database/sql"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type AssetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Save(asset domain.Asset) error {
	_, err := r.db.Exec(
		`INSERT INTO assets (id, user_id, name, cost, purchase_date, annual_rate_percent, salvage_value)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		asset.ID, asset.UserID, asset.Name, asset.Cost, asset.PurchaseDate, asset.AnnualRatePercent, asset.SalvageValue,
	)
	return err
}

func (r *AssetRepository) FindByUser(userID string) ([]domain.Asset, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, cost, purchase_date, annual_rate_percent, salvage_value
         FROM assets WHERE user_id = $1 ORDER BY purchase_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Cost,
			&asset.PurchaseDate, &asset.AnnualRatePercent, &asset.SalvageValue); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

func (r *AssetRepository) FindByID(assetID, userID string) (*domain.Asset, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, name, cost, purchase_date, annual_rate_percent, salvage_value
         FROM assets WHERE id = $1 AND user_id = $2`, assetID, userID)

	var asset domain.Asset
	err := row.Scan(&asset.ID, &asset.UserID, &asset.Name, &asset.Cost,
		&asset.PurchaseDate, &asset.AnnualRatePercent, &asset.SalvageValue)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *AssetRepository) Update(asset domain.Asset) error {
	result, err := r.db.Exec(
		`UPDATE assets
         SET name = $1, cost = $2, purchase_date = $3, annual_rate_percent = $4, salvage_value = $5
         WHERE id = $6 AND user_id = $7`,
		asset.Name, asset.Cost, asset.PurchaseDate, asset.AnnualRatePercent, asset.SalvageValue, asset.ID, asset.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) Delete(assetID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM assets WHERE id = $1 AND user_id = $2`, assetID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrAssetNotFound
	}
	return nil
}
