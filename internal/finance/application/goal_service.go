package application

import (
	"math"

	"github.com/google/uuid"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type SavingsGoalService struct {
	repo domain.SavingsGoalRepository
}

func NewSavingsGoalService(repo domain.SavingsGoalRepository) *SavingsGoalService {
	return &SavingsGoalService{repo: repo}
}

func (s *SavingsGoalService) CreateGoal(goal *domain.SavingsGoal) error {
	goal.ID = uuid.NewString()
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.repo.Save(*goal)
}

func (s *SavingsGoalService) GetUserGoals(userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

func (s *SavingsGoalService) UpdateGoal(goal domain.SavingsGoal) error {
	if err := goal.Validate(); err != nil {
		return err
	}
	return s.repo.Update(goal)
}

func (s *SavingsGoalService) DeleteGoal(goalID, userID string) error {
	return s.repo.Delete(goalID, userID)
}

// Contribute adds amount to the goal's saved total and returns the updated goal.
func (s *SavingsGoalService) Contribute(goalID, userID string, amount float64) (*domain.SavingsGoal, error) {
	if amount <= 0 {
		return nil, financeErrors.NewValidationError("Contribution must be greater than zero")
	}
	goal, err := s.repo.FindByID(goalID, userID)
	if err != nil {
		return nil, err
	}
	goal.CurrentAmount = math.Round((goal.CurrentAmount+amount)*100) / 100
	if err := s.repo.Update(*goal); err != nil {
		return nil, err
	}
	return goal, nil
}
