package application

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/domain"
	"github.com/Nelly255/Finora/internal/finance/errors"
	"github.com/Nelly255/Finora/internal/finance/infrastructure"
)

// Helper function to compare floating-point values
func areEqualRounded(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

func TestGetTransactionSummary_MultipleYearsMonthsWeeks(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			// 2023
			{Date: time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 100.12},
			{Date: time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC), Type: "expense", Amount: 50.55},
			{Date: time.Date(2023, time.March, 5, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 300.45},
			{Date: time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 100.12},
			{Date: time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), Type: "expense", Amount: 75.55},

			// 2022
			{Date: time.Date(2022, time.November, 20, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 150.12},
			{Date: time.Date(2022, time.December, 10, 0, 0, 0, 0, time.UTC), Type: "expense", Amount: 60.55},
			{Date: time.Date(2022, time.December, 25, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 120.45},
		},
	}
	service := NewTransactionService(repo, &MockCategoryService{})

	startDate, _ := time.Parse("2006-01-02", "2022-01-01")
	endDate, _ := time.Parse("2006-01-02", "2023-12-31")

	summary, err := service.GetTransactionSummary("", startDate, endDate)
	assert.NoError(t, err)

	year2023 := summary[2023]
	assert.True(t, areEqualRounded(year2023.IncomeTotal, 500.69), fmt.Sprintf("Expected income total for 2023 to be 500.69, got: %v", year2023.IncomeTotal))
	assert.True(t, areEqualRounded(year2023.ExpenseTotal, 126.1), fmt.Sprintf("Expected expense total for 2023 to be 126.10, got: %v", year2023.ExpenseTotal))

	january := year2023.Months["January"]
	assert.True(t, areEqualRounded(january.IncomeTotal, 100.12))
	assert.True(t, areEqualRounded(january.ExpenseTotal, 50.55))

	march := year2023.Months["March"]
	assert.True(t, areEqualRounded(march.IncomeTotal, 400.57))
	assert.True(t, areEqualRounded(march.ExpenseTotal, 75.55))

	year2022 := summary[2022]
	assert.True(t, areEqualRounded(year2022.IncomeTotal, 270.57))
	assert.True(t, areEqualRounded(year2022.ExpenseTotal, 60.55))
}

func TestGetMonthlyAggregates_OrderedOldestFirst(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{
		Transactions: []domain.Transaction{
			{Date: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 3000},
			{Date: time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC), Type: "expense", Amount: 1200},
			{Date: time.Date(2024, time.February, 3, 0, 0, 0, 0, time.UTC), Type: "income", Amount: 3100},
			{Date: time.Date(2024, time.February, 14, 0, 0, 0, 0, time.UTC), Type: "expense", Amount: 900},
		},
	}
	service := NewTransactionService(repo, &MockCategoryService{})

	aggregates, err := service.GetMonthlyAggregates("",
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Len(t, aggregates, 2)
	assert.Equal(t, "2024-01", aggregates[0].Month)
	assert.Equal(t, 3000.0, aggregates[0].Income)
	assert.Equal(t, 1200.0, aggregates[0].Expenses)
	assert.Equal(t, "2024-02", aggregates[1].Month)
}

func TestCreateTransaction_AssignsIDAndRounds(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo, &MockCategoryService{})

	transaction := &domain.Transaction{
		UserID: "user-1",
		Amount: 10.555,
		Type:   "expense",
		Date:   time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
	}
	err := service.CreateTransaction(transaction)
	assert.NoError(t, err)
	assert.NotEmpty(t, transaction.ID)
	assert.Equal(t, 10.56, transaction.Amount)
	assert.Len(t, repo.Transactions, 1)
}

func TestCreateTransaction_RejectsInvalidType(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo, &MockCategoryService{})

	err := service.CreateTransaction(&domain.Transaction{
		UserID: "user-1",
		Amount: 10,
		Type:   "transfer",
		Date:   time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
	})
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, repo.Transactions)
}

func TestCreateTransaction_RejectsUnknownCategory(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	categoryID := 42
	service := NewTransactionService(repo, &MockCategoryService{KnownPredefined: map[int]bool{1: true}})

	err := service.CreateTransaction(&domain.Transaction{
		UserID:               "user-1",
		Amount:               10,
		Type:                 "expense",
		Date:                 time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC),
		PredefinedCategoryID: &categoryID,
	})
	assert.Equal(t, errors.ErrInvalidPredefinedCategory, err)
}

func TestCreateTransactionsBulk_CollectsIndexedErrors(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo, &MockCategoryService{
		Predefined: []domain.PredefinedCategory{{ID: 1, Name: "Groceries", Type: "expense"}},
	})

	badCategory := 99
	transactions := []*domain.Transaction{
		{Amount: 10, Type: "expense", Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)},
		{Amount: 20, Type: "invalid", Date: time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)},
		{Amount: 30, Type: "expense", Date: time.Date(2024, time.May, 5, 0, 0, 0, 0, time.UTC), PredefinedCategoryID: &badCategory},
	}

	err := service.CreateTransactionsBulk(transactions, "user-1")
	assert.True(t, errors.IsValidationErrors(err))

	var validationErrors *errors.ValidationErrors
	assert.ErrorAs(t, err, &validationErrors)
	assert.Len(t, validationErrors.Errors, 2)
}

func TestCreateTransactionsBulk_AllValid(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo, &MockCategoryService{
		Predefined: []domain.PredefinedCategory{{ID: 1, Name: "Groceries", Type: "expense"}},
	})

	categoryID := 1
	transactions := []*domain.Transaction{
		{Amount: 10, Type: "expense", Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC), PredefinedCategoryID: &categoryID},
		{Amount: 20, Type: "income", Date: time.Date(2024, time.May, 4, 0, 0, 0, 0, time.UTC)},
	}

	err := service.CreateTransactionsBulk(transactions, "user-1")
	assert.NoError(t, err)
	assert.Len(t, repo.Transactions, 2)
	assert.Equal(t, "user-1", repo.Transactions[0].UserID)
}

func TestCreateTransactionsBulk_DatabaseError(t *testing.T) {
	causeErr := fmt.Errorf("connection reset by peer")
	repo := &infrastructure.MockTransactionRepository{SaveErr: causeErr}
	service := NewTransactionService(repo, &MockCategoryService{})

	transactions := []*domain.Transaction{
		{Amount: 10, Type: "expense", Date: time.Date(2024, time.May, 3, 0, 0, 0, 0, time.UTC)},
	}

	err := service.CreateTransactionsBulk(transactions, "user-1")
	assert.ErrorIs(t, err, causeErr)
	assert.Contains(t, err.Error(), "database error at transaction 1")
	assert.Empty(t, repo.Transactions)
}

func TestDeleteTransaction_NotFound(t *testing.T) {
	repo := &infrastructure.MockTransactionRepository{}
	service := NewTransactionService(repo, &MockCategoryService{})

	err := service.DeleteTransaction("missing", "user-1")
	assert.ErrorIs(t, err, errors.ErrTransactionNotFound)
}
