package domain

import (
	"database/sql"
	"math"
	"time"

	"github.com/Nelly255/Finora/internal/finance/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

type TransactionRepository interface {
	Save(transaction Transaction) error
	FindByUser(userID string) ([]Transaction, error)
	FindByID(transactionID, userID string) (*Transaction, error)
	Delete(transactionID, userID string) error
	Update(transaction Transaction) error
	SaveWithTransaction(transaction Transaction, tx *sql.Tx) error
	BeginTransaction() (*sql.Tx, error)
	GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]Transaction, error)
	GetTransactionsByType(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]Transaction, error)
	GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]TransactionByCategorySummary, error)
	GetExpensesByPredefinedCategory(userID string, startDate, endDate time.Time) ([]TransactionByCategorySummary, error)
}

type Transaction struct {
	ID                   string    `json:"id"`
	UserID               string    `json:"user_id"`
	Amount               float64   `json:"amount"`
	Type                 string    `json:"type"` // "income" or "expense"
	Date                 time.Time `json:"date"`
	Description          string    `json:"description"`
	PredefinedCategoryID *int      `json:"predefined_category_id,omitempty"`
	UserCategoryID       *int      `json:"user_category_id,omitempty"`
}

type TransactionByCategorySummary struct {
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Total        float64 `json:"total"`
	Count        int     `json:"count"`
}

func IsValidTransactionType(transactionType string) bool {
	return transactionType == "" || transactionType == TypeIncome || transactionType == TypeExpense
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

func (t *Transaction) Validate() error {
	if t.Amount < 0 {
		return errors.NewValidationError("Amount must not be negative")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return errors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if len(t.Description) > 200 {
		return errors.NewValidationError("Description must be of length less than 200")
	}
	if t.PredefinedCategoryID != nil && t.UserCategoryID != nil {
		return errors.NewValidationError("At most one of predefined or user category may be set")
	}
	if t.Date.IsZero() {
		return errors.NewValidationError("Date is required")
	}
	return nil
}
