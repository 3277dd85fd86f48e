package interfaces

import (
	"time"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

var predefinedCategoryMap = map[int]struct{}{
	1: {},
	2: {},
}

var userCategoryMap = map[int]struct{}{
	10: {},
	20: {},
}

// MockTransactionService validates like the real service but keeps
// everything in memory.
type MockTransactionService struct {
	Saved       []domain.Transaction
	ReturnError error
}

func (m *MockTransactionService) validateCategory(transaction *domain.Transaction, index int, validationErrors *financeErrors.ValidationErrors) bool {
	if transaction.PredefinedCategoryID != nil {
		if _, exists := predefinedCategoryMap[*transaction.PredefinedCategoryID]; !exists {
			validationErrors.Add(financeErrors.NewIndexedValidationError(index, financeErrors.ErrInvalidPredefinedCategory.Error()))
			return false
		}
	}
	if transaction.UserCategoryID != nil {
		if _, exists := userCategoryMap[*transaction.UserCategoryID]; !exists {
			validationErrors.Add(financeErrors.NewIndexedValidationError(index, financeErrors.ErrInvalidUserCategory.Error()))
			return false
		}
	}
	return true
}

func (m *MockTransactionService) CreateTransaction(transaction *domain.Transaction) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if transaction.PredefinedCategoryID != nil {
		if _, exists := predefinedCategoryMap[*transaction.PredefinedCategoryID]; !exists {
			return financeErrors.ErrInvalidPredefinedCategory
		}
	}
	if transaction.UserCategoryID != nil {
		if _, exists := userCategoryMap[*transaction.UserCategoryID]; !exists {
			return financeErrors.ErrInvalidUserCategory
		}
	}
	m.Saved = append(m.Saved, *transaction)
	return nil
}

func (m *MockTransactionService) CreateTransactionsBulk(transactions []*domain.Transaction, userID string) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}
	var validationErrors = &financeErrors.ValidationErrors{}
	for i, transaction := range transactions {
		transaction.UserID = userID
		transaction.RoundToTwoDecimalPlaces()
		if err := transaction.Validate(); err != nil {
			validationErrors.Add(financeErrors.NewIndexedValidationError(i+1, err.Error()))
			continue
		}
		if !m.validateCategory(transaction, i+1, validationErrors) {
			continue
		}
	}
	if len(validationErrors.Errors) > 0 {
		return validationErrors
	}
	for _, transaction := range transactions {
		m.Saved = append(m.Saved, *transaction)
	}
	return nil
}

func (m *MockTransactionService) GetUserTransactions(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}
	var out []domain.Transaction
	for _, t := range m.Saved {
		if t.UserID != userID {
			continue
		}
		if transactionType != "" && t.Type != transactionType {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *MockTransactionService) UpdateTransaction(transaction domain.Transaction) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}
	for i, t := range m.Saved {
		if t.ID == transaction.ID && t.UserID == transaction.UserID {
			m.Saved[i] = transaction
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) DeleteTransaction(transactionID, userID string) error {
	if m.ReturnError != nil {
		return m.ReturnError
	}
	for i, t := range m.Saved {
		if t.ID == transactionID && t.UserID == userID {
			m.Saved = append(m.Saved[:i], m.Saved[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]application.TransactionSummary, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}
	return map[int]application.TransactionSummary{}, nil
}

func (m *MockTransactionService) GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error) {
	if m.ReturnError != nil {
		return nil, m.ReturnError
	}
	return []domain.TransactionByCategorySummary{}, nil
}
