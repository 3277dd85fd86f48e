package infrastructure

import (
	"database/sql"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

// MockTransactionRepository is an in-memory repository for service tests.
// BeginTransaction returns a nil *sql.Tx; SaveWithTransaction appends like Save.
type MockTransactionRepository struct {
	Transactions []domain.Transaction
	SaveErr      error
}

func (m *MockTransactionRepository) Save(transaction domain.Transaction) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Transactions = append(m.Transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) SaveWithTransaction(transaction domain.Transaction, _ *sql.Tx) error {
	return m.Save(transaction)
}

func (m *MockTransactionRepository) BeginTransaction() (*sql.Tx, error) {
	return nil, nil
}

func (m *MockTransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID == userID {
			out = append(out, transaction)
		}
	}
	return out, nil
}

func (m *MockTransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	for _, transaction := range m.Transactions {
		if transaction.ID == transactionID && transaction.UserID == userID {
			t := transaction
			return &t, nil
		}
	}
	return nil, financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Update(transaction domain.Transaction) error {
	for i, existing := range m.Transactions {
		if existing.ID == transaction.ID && existing.UserID == transaction.UserID {
			m.Transactions[i] = transaction
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Delete(transactionID, userID string) error {
	for i, existing := range m.Transactions {
		if existing.ID == transactionID && existing.UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	var filtered []domain.Transaction
	for _, transaction := range m.Transactions {
		if userID != "" && transaction.UserID != userID {
			continue
		}
		if !transaction.Date.Before(startDate) && transaction.Date.Before(endDate) {
			filtered = append(filtered, transaction)
		}
	}
	return filtered, nil
}

func (m *MockTransactionRepository) GetTransactionsByType(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	inRange, err := m.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	var filtered []domain.Transaction
	for _, transaction := range inRange {
		if transactionType == "" || transaction.Type == transactionType {
			filtered = append(filtered, transaction)
		}
	}
	offset := (page - 1) * limit
	if offset >= len(filtered) {
		return nil, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], nil
}

func (m *MockTransactionRepository) GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error) {
	inRange, err := m.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	totals := map[int]*domain.TransactionByCategorySummary{}
	for _, transaction := range inRange {
		if transaction.Type != transactionType {
			continue
		}
		id := 0
		if transaction.PredefinedCategoryID != nil {
			id = *transaction.PredefinedCategoryID
		} else if transaction.UserCategoryID != nil {
			id = *transaction.UserCategoryID
		}
		if _, ok := totals[id]; !ok {
			totals[id] = &domain.TransactionByCategorySummary{CategoryID: id}
		}
		totals[id].Total += transaction.Amount
		totals[id].Count++
	}
	var out []domain.TransactionByCategorySummary
	for _, summary := range totals {
		out = append(out, *summary)
	}
	return out, nil
}

func (m *MockTransactionRepository) GetExpensesByPredefinedCategory(userID string, startDate, endDate time.Time) ([]domain.TransactionByCategorySummary, error) {
	inRange, err := m.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	totals := map[int]*domain.TransactionByCategorySummary{}
	for _, transaction := range inRange {
		if transaction.Type != domain.TypeExpense || transaction.PredefinedCategoryID == nil {
			continue
		}
		id := *transaction.PredefinedCategoryID
		if _, ok := totals[id]; !ok {
			totals[id] = &domain.TransactionByCategorySummary{CategoryID: id}
		}
		totals[id].Total += transaction.Amount
		totals[id].Count++
	}
	var out []domain.TransactionByCategorySummary
	for _, summary := range totals {
		out = append(out, *summary)
	}
	return out, nil
}
