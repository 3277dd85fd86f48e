package domain

import "github.com/Nelly255/Finora/internal/finance/errors"

type PredefinedCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // "income" or "expense"
}

type UserCategory struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	UserID string `json:"-"` // user UUID
}

func (c *UserCategory) Validate() error {
	if c.Name == "" {
		return errors.NewValidationError("Category name is required")
	}
	if len(c.Name) > 60 {
		return errors.NewValidationError("Category name must be of length less than 60")
	}
	return nil
}

type CategoryRepository interface {
	FindPredefinedCategories(categoryType string) ([]PredefinedCategory, error)
	FindUserCategories(userID string) ([]UserCategory, error)
	DoesPredefinedCategoryExistByID(categoryID int) (bool, error)
	DoesUserCategoryExistByID(categoryID int, userID string) (bool, error)
	SaveUserCategory(category UserCategory) (int, error)
	RenameUserCategory(categoryID int, userID, name string) error
	DeleteUserCategory(categoryID int, userID string) error
}
