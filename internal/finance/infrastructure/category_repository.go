package infrastructure

import (
	"database/sql"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	query := `SELECT id, name, type FROM predefined_categories`
	args := []interface{}{}
	if categoryType != "" {
		query += ` WHERE type = $1`
		args = append(args, categoryType)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.PredefinedCategory
	for rows.Next() {
		var category domain.PredefinedCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.Type); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) FindUserCategories(userID string) ([]domain.UserCategory, error) {
	rows, err := r.db.Query(`SELECT id, name, user_id FROM user_categories WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.UserCategory
	for rows.Next() {
		var category domain.UserCategory
		if err := rows.Scan(&category.ID, &category.Name, &category.UserID); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) DoesPredefinedCategoryExistByID(categoryID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM predefined_categories WHERE id = $1)`, categoryID).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) DoesUserCategoryExistByID(categoryID int, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM user_categories WHERE id = $1 AND user_id = $2)`, categoryID, userID).Scan(&exists)
	return exists, err
}

func (r *CategoryRepository) SaveUserCategory(category domain.UserCategory) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO user_categories (name, user_id) VALUES ($1, $2) RETURNING id`,
		category.Name, category.UserID,
	).Scan(&id)
	return id, err
}

func (r *CategoryRepository) RenameUserCategory(categoryID int, userID, name string) error {
	result, err := r.db.Exec(`UPDATE user_categories SET name = $1 WHERE id = $2 AND user_id = $3`, name, categoryID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteUserCategory(categoryID int, userID string) error {
	result, err := r.db.Exec(`DELETE FROM user_categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrCategoryNotFound
	}
	return nil
}
