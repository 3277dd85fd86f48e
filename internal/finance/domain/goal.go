package domain

import (
	"time"

	"github.com/Nelly255/Finora/internal/finance/errors"
)

type SavingsGoal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline,omitempty"`
}

type SavingsGoalRepository interface {
	Save(goal SavingsGoal) error
	FindByUser(userID string) ([]SavingsGoal, error)
	FindByID(goalID, userID string) (*SavingsGoal, error)
	Update(goal SavingsGoal) error
	Delete(goalID, userID string) error
}

func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return errors.NewValidationError("Goal name is required")
	}
	if g.TargetAmount <= 0 {
		return errors.NewValidationError("Target amount must be greater than zero")
	}
	if g.CurrentAmount < 0 {
		return errors.NewValidationError("Current amount must not be negative")
	}
	return nil
}

// Progress reports how much of the target has been saved, in [0, 1].
func (g *SavingsGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}
