package application

import (
	"github.com/google/uuid"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type BudgetService struct {
	repo            domain.BudgetRepository
	transactionRepo domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewBudgetService(repo domain.BudgetRepository, transactionRepo domain.TransactionRepository, categoryService CategoryServiceInterface) *BudgetService {
	return &BudgetService{repo: repo, transactionRepo: transactionRepo, categoryService: categoryService}
}

func (s *BudgetService) CreateBudget(budget *domain.Budget) error {
	budget.ID = uuid.NewString()
	if err := budget.Validate(); err != nil {
		return err
	}
	exists, err := s.categoryService.DoesPredefinedCategoryExist(budget.CategoryID)
	if err != nil {
		return err
	}
	if !exists {
		return financeErrors.ErrInvalidPredefinedCategory
	}
	return s.repo.Save(*budget)
}

func (s *BudgetService) GetBudgets(userID, month string) ([]domain.Budget, error) {
	budgets, err := s.repo.FindByUserAndMonth(userID, month)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *BudgetService) UpdateBudget(budget domain.Budget) error {
	if err := budget.Validate(); err != nil {
		return err
	}
	return s.repo.Update(budget)
}

func (s *BudgetService) DeleteBudget(budgetID, userID string) error {
	return s.repo.Delete(budgetID, userID)
}

// GetBudgetStatus compares each budget of the month against the expenses
// actually recorded in that month's category. Only predefined-category
// expenses count: budgets are keyed by predefined category ids, and a user
// category can carry the same numeric id without being the same category.
func (s *BudgetService) GetBudgetStatus(userID, month string) ([]domain.BudgetStatus, error) {
	budgets, err := s.repo.FindByUserAndMonth(userID, month)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []domain.BudgetStatus{}, nil
	}

	start, end := budgets[0].MonthRange()
	summaries, err := s.transactionRepo.GetExpensesByPredefinedCategory(userID, start, end)
	if err != nil {
		return nil, err
	}

	spentByCategory := make(map[int]float64)
	nameByCategory := make(map[int]string)
	for _, summary := range summaries {
		spentByCategory[summary.CategoryID] = summary.Total
		nameByCategory[summary.CategoryID] = summary.CategoryName
	}

	statuses := make([]domain.BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		spent := spentByCategory[budget.CategoryID]
		statuses = append(statuses, domain.BudgetStatus{
			Budget:       budget,
			CategoryName: nameByCategory[budget.CategoryID],
			Spent:        spent,
			Remaining:    budget.Limit - spent,
			OverLimit:    spent > budget.Limit,
		})
	}
	return statuses, nil
}
