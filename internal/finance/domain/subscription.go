package domain

import (
	"time"

	"github.com/Nelly255/Finora/internal/finance/errors"
)

const (
	CadenceMonthly = "monthly"
	CadenceYearly  = "yearly"
)

// Subscription is a recurring expense. When NextDueDate passes, the due
// processor posts an expense transaction and advances the date by one period.
type Subscription struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"-"`
	Name                 string    `json:"name"`
	Amount               float64   `json:"amount"`
	Cadence              string    `json:"cadence"` // "monthly" or "yearly"
	NextDueDate          time.Time `json:"next_due_date"`
	PredefinedCategoryID *int      `json:"predefined_category_id,omitempty"`
}

type SubscriptionRepository interface {
	Save(subscription Subscription) error
	FindByUser(userID string) ([]Subscription, error)
	FindByID(subscriptionID, userID string) (*Subscription, error)
	FindDue(asOf time.Time) ([]Subscription, error)
	Update(subscription Subscription) error
	Delete(subscriptionID, userID string) error
}

func (s *Subscription) Validate() error {
	if s.Name == "" {
		return errors.NewValidationError("Subscription name is required")
	}
	if s.Amount <= 0 {
		return errors.NewValidationError("Subscription amount must be greater than zero")
	}
	if s.Cadence != CadenceMonthly && s.Cadence != CadenceYearly {
		return errors.NewValidationError("Cadence must be 'monthly' or 'yearly'")
	}
	if s.NextDueDate.IsZero() {
		return errors.NewValidationError("Next due date is required")
	}
	return nil
}

// Advance moves NextDueDate forward by one billing period.
func (s *Subscription) Advance() {
	if s.Cadence == CadenceYearly {
		s.NextDueDate = s.NextDueDate.AddDate(1, 0, 0)
		return
	}
	s.NextDueDate = s.NextDueDate.AddDate(0, 1, 0)
}
