package application

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type TransactionCreator interface {
	CreateTransaction(transaction *domain.Transaction) error
}

type SubscriptionService struct {
	repo               domain.SubscriptionRepository
	transactionService TransactionCreator
	categoryService    CategoryServiceInterface
}

func NewSubscriptionService(repo domain.SubscriptionRepository, transactionService TransactionCreator, categoryService CategoryServiceInterface) *SubscriptionService {
	return &SubscriptionService{repo: repo, transactionService: transactionService, categoryService: categoryService}
}

func (s *SubscriptionService) CreateSubscription(subscription *domain.Subscription) error {
	subscription.ID = uuid.NewString()
	if err := subscription.Validate(); err != nil {
		return err
	}
	if subscription.PredefinedCategoryID != nil {
		exists, err := s.categoryService.DoesPredefinedCategoryExist(*subscription.PredefinedCategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidPredefinedCategory
		}
	}
	return s.repo.Save(*subscription)
}

func (s *SubscriptionService) GetUserSubscriptions(userID string) ([]domain.Subscription, error) {
	subscriptions, err := s.repo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	if subscriptions == nil {
		return []domain.Subscription{}, nil
	}
	return subscriptions, nil
}

func (s *SubscriptionService) UpdateSubscription(subscription domain.Subscription) error {
	if err := subscription.Validate(); err != nil {
		return err
	}
	return s.repo.Update(subscription)
}

func (s *SubscriptionService) DeleteSubscription(subscriptionID, userID string) error {
	return s.repo.Delete(subscriptionID, userID)
}

// ProcessDue posts an expense transaction for every elapsed billing period of
// every due subscription and advances its next due date. Run daily by the
// scheduler; safe to call more often because it only acts on past-due rows.
func (s *SubscriptionService) ProcessDue(now time.Time) (int, error) {
	due, err := s.repo.FindDue(now)
	if err != nil {
		return 0, err
	}

	posted := 0
	for _, subscription := range due {
		for !subscription.NextDueDate.After(now) {
			transaction := domain.Transaction{
				UserID:               subscription.UserID,
				Amount:               subscription.Amount,
				Type:                 domain.TypeExpense,
				Date:                 subscription.NextDueDate,
				Description:          fmt.Sprintf("Subscription: %s", subscription.Name),
				PredefinedCategoryID: subscription.PredefinedCategoryID,
			}
			if err := s.transactionService.CreateTransaction(&transaction); err != nil {
				log.Printf("Error posting subscription %s: %v", subscription.ID, err)
				break
			}
			posted++
			subscription.Advance()
		}
		if err := s.repo.Update(subscription); err != nil {
			return posted, err
		}
	}
	return posted, nil
}
