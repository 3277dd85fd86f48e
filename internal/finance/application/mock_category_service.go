package application

import "github.com/Nelly255/Finora/internal/finance/domain"

// MockCategoryService accepts every category by default; set Known maps to
// restrict which IDs exist.
type MockCategoryService struct {
	KnownPredefined map[int]bool
	KnownUser       map[int]bool
	Predefined      []domain.PredefinedCategory
	User            []domain.UserCategory
}

func (m *MockCategoryService) DoesPredefinedCategoryExist(categoryID int) (bool, error) {
	if m.KnownPredefined == nil {
		return true, nil
	}
	return m.KnownPredefined[categoryID], nil
}

func (m *MockCategoryService) DoesUserCategoryExist(categoryID int, _ string) (bool, error) {
	if m.KnownUser == nil {
		return true, nil
	}
	return m.KnownUser[categoryID], nil
}

func (m *MockCategoryService) GetAllPredefinedCategories(_ string) ([]domain.PredefinedCategory, error) {
	return m.Predefined, nil
}

func (m *MockCategoryService) GetAllUserCategories(_ string) ([]domain.UserCategory, error) {
	return m.User, nil
}
