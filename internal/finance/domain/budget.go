package domain

import (
	"time"

	"github.com/Nelly255/Finora/internal/finance/errors"
)

// Budget caps spending for one predefined expense category in one month.
type Budget struct {
	ID         string  `json:"id"`
	UserID     string  `json:"-"`
	CategoryID int     `json:"category_id"`
	Month      string  `json:"month"` // "2006-01"
	Limit      float64 `json:"limit"`
}

type BudgetStatus struct {
	Budget       Budget  `json:"budget"`
	CategoryName string  `json:"category_name"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	OverLimit    bool    `json:"over_limit"`
}

type BudgetRepository interface {
	Save(budget Budget) error
	FindByUserAndMonth(userID, month string) ([]Budget, error)
	FindByID(budgetID, userID string) (*Budget, error)
	Update(budget Budget) error
	Delete(budgetID, userID string) error
}

func (b *Budget) Validate() error {
	if b.Limit <= 0 {
		return errors.NewValidationError("Budget limit must be greater than zero")
	}
	if _, err := time.Parse("2006-01", b.Month); err != nil {
		return errors.NewValidationError("Month must be in YYYY-MM format")
	}
	return nil
}

// MonthRange returns the [start, end) interval covered by the budget's month.
func (b *Budget) MonthRange() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01", b.Month)
	return start, start.AddDate(0, 1, 0)
}
