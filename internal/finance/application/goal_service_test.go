package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/domain"
	"github.com/Nelly255/Finora/internal/finance/errors"
)

type mockGoalRepository struct {
	goals []domain.SavingsGoal
}

func (m *mockGoalRepository) Save(goal domain.SavingsGoal) error {
	m.goals = append(m.goals, goal)
	return nil
}

func (m *mockGoalRepository) FindByUser(userID string) ([]domain.SavingsGoal, error) {
	var out []domain.SavingsGoal
	for _, goal := range m.goals {
		if goal.UserID == userID {
			out = append(out, goal)
		}
	}
	return out, nil
}

func (m *mockGoalRepository) FindByID(goalID, userID string) (*domain.SavingsGoal, error) {
	for _, goal := range m.goals {
		if goal.ID == goalID && goal.UserID == userID {
			g := goal
			return &g, nil
		}
	}
	return nil, errors.ErrGoalNotFound
}

func (m *mockGoalRepository) Update(goal domain.SavingsGoal) error {
	for i, existing := range m.goals {
		if existing.ID == goal.ID {
			m.goals[i] = goal
			return nil
		}
	}
	return errors.ErrGoalNotFound
}

func (m *mockGoalRepository) Delete(goalID, userID string) error {
	for i, existing := range m.goals {
		if existing.ID == goalID && existing.UserID == userID {
			m.goals = append(m.goals[:i], m.goals[i+1:]...)
			return nil
		}
	}
	return errors.ErrGoalNotFound
}

func TestCreateGoal_Valid(t *testing.T) {
	repo := &mockGoalRepository{}
	service := NewSavingsGoalService(repo)

	goal := &domain.SavingsGoal{UserID: "user-1", Name: "Holiday", TargetAmount: 2000}
	err := service.CreateGoal(goal)
	assert.NoError(t, err)
	assert.NotEmpty(t, goal.ID)
}

func TestCreateGoal_InvalidTarget(t *testing.T) {
	service := NewSavingsGoalService(&mockGoalRepository{})

	err := service.CreateGoal(&domain.SavingsGoal{UserID: "user-1", Name: "Holiday", TargetAmount: 0})
	assert.True(t, errors.IsValidationError(err))
}

func TestContribute_AddsAndRounds(t *testing.T) {
	repo := &mockGoalRepository{goals: []domain.SavingsGoal{
		{ID: "g1", UserID: "user-1", Name: "Holiday", TargetAmount: 2000, CurrentAmount: 100.10},
	}}
	service := NewSavingsGoalService(repo)

	goal, err := service.Contribute("g1", "user-1", 49.91)
	assert.NoError(t, err)
	assert.Equal(t, 150.01, goal.CurrentAmount)
	assert.Equal(t, 150.01, repo.goals[0].CurrentAmount)
}

func TestContribute_RejectsNonPositive(t *testing.T) {
	repo := &mockGoalRepository{goals: []domain.SavingsGoal{
		{ID: "g1", UserID: "user-1", Name: "Holiday", TargetAmount: 2000},
	}}
	service := NewSavingsGoalService(repo)

	_, err := service.Contribute("g1", "user-1", 0)
	assert.True(t, errors.IsValidationError(err))

	_, err = service.Contribute("g1", "user-1", -5)
	assert.True(t, errors.IsValidationError(err))
}

func TestContribute_GoalNotFound(t *testing.T) {
	service := NewSavingsGoalService(&mockGoalRepository{})

	_, err := service.Contribute("missing", "user-1", 10)
	assert.ErrorIs(t, err, errors.ErrGoalNotFound)
}

func TestGoalProgress(t *testing.T) {
	goal := domain.SavingsGoal{TargetAmount: 2000, CurrentAmount: 500}
	assert.Equal(t, 0.25, goal.Progress())

	over := domain.SavingsGoal{TargetAmount: 2000, CurrentAmount: 2500}
	assert.Equal(t, 1.0, over.Progress())
}
