package application

import "github.com/Nelly255/Finora/internal/finance/domain"

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func (s *CategoryService) DoesPredefinedCategoryExist(categoryID int) (bool, error) {
	return s.repo.DoesPredefinedCategoryExistByID(categoryID)
}

func (s *CategoryService) DoesUserCategoryExist(categoryID int, userID string) (bool, error) {
	return s.repo.DoesUserCategoryExistByID(categoryID, userID)
}

func (s *CategoryService) GetAllPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error) {
	return s.repo.FindPredefinedCategories(categoryType)
}

func (s *CategoryService) GetAllUserCategories(userID string) ([]domain.UserCategory, error) {
	return s.repo.FindUserCategories(userID)
}

func (s *CategoryService) CreateUserCategory(category *domain.UserCategory) error {
	if err := category.Validate(); err != nil {
		return err
	}
	id, err := s.repo.SaveUserCategory(*category)
	if err != nil {
		return err
	}
	category.ID = id
	return nil
}

func (s *CategoryService) RenameUserCategory(categoryID int, userID, name string) error {
	category := domain.UserCategory{ID: categoryID, Name: name, UserID: userID}
	if err := category.Validate(); err != nil {
		return err
	}
	return s.repo.RenameUserCategory(categoryID, userID, name)
}

func (s *CategoryService) DeleteUserCategory(categoryID int, userID string) error {
	return s.repo.DeleteUserCategory(categoryID, userID)
}
