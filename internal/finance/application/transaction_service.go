package application

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type CategoryServiceInterface interface {
	DoesPredefinedCategoryExist(categoryID int) (bool, error)
	DoesUserCategoryExist(categoryID int, userID string) (bool, error)
	GetAllPredefinedCategories(categoryType string) ([]domain.PredefinedCategory, error)
	GetAllUserCategories(userID string) ([]domain.UserCategory, error)
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, categoryService: categoryService}
}

type TransactionSummary struct {
	Year         int
	IncomeTotal  float64
	ExpenseTotal float64
	Months       map[string]MonthSummary
}

type MonthSummary struct {
	IncomeTotal  float64
	ExpenseTotal float64
	Weeks        []WeekSummary
}

type WeekSummary struct {
	Week         int
	IncomeTotal  float64
	ExpenseTotal float64
}

func (s *TransactionService) GetTransactionSummary(userID string, startDate, endDate time.Time) (map[int]TransactionSummary, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := make(map[int]TransactionSummary)

	for _, transaction := range transactions {
		year := transaction.Date.Year()
		month := transaction.Date.Month().String()
		_, week := transaction.Date.ISOWeek()

		if _, exists := summary[year]; !exists {
			summary[year] = TransactionSummary{
				Year:   year,
				Months: make(map[string]MonthSummary),
			}
		}

		yearSummary := summary[year]

		if _, exists := yearSummary.Months[month]; !exists {
			yearSummary.Months[month] = MonthSummary{
				Weeks: []WeekSummary{},
			}
		}

		monthSummary := yearSummary.Months[month]

		if transaction.Type == domain.TypeIncome {
			yearSummary.IncomeTotal += transaction.Amount
			monthSummary.IncomeTotal += transaction.Amount
		} else if transaction.Type == domain.TypeExpense {
			yearSummary.ExpenseTotal += transaction.Amount
			monthSummary.ExpenseTotal += transaction.Amount
		}

		found := false
		for i, weekSummary := range monthSummary.Weeks {
			if weekSummary.Week == week {
				if transaction.Type == domain.TypeIncome {
					monthSummary.Weeks[i].IncomeTotal += transaction.Amount
				} else if transaction.Type == domain.TypeExpense {
					monthSummary.Weeks[i].ExpenseTotal += transaction.Amount
				}
				found = true
				break
			}
		}
		if !found {
			weekSummary := WeekSummary{
				Week: week,
			}
			if transaction.Type == domain.TypeIncome {
				weekSummary.IncomeTotal = transaction.Amount
			} else if transaction.Type == domain.TypeExpense {
				weekSummary.ExpenseTotal = transaction.Amount
			}
			monthSummary.Weeks = append(monthSummary.Weeks, weekSummary)
		}

		yearSummary.Months[month] = monthSummary
		summary[year] = yearSummary
	}

	return summary, nil
}

// GetMonthlyAggregates flattens stored transactions into ordered month totals,
// oldest first, for the health score and AI summary.
func (s *TransactionService) GetMonthlyAggregates(userID string, startDate, endDate time.Time) ([]MonthlyTotals, error) {
	transactions, err := s.repo.GetTransactionsInDateRange(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	totals := map[string]*MonthlyTotals{}
	var order []string
	for _, transaction := range transactions {
		key := transaction.Date.Format("2006-01")
		if _, ok := totals[key]; !ok {
			totals[key] = &MonthlyTotals{Month: key}
			order = append(order, key)
		}
		if transaction.Type == domain.TypeIncome {
			totals[key].Income += transaction.Amount
		} else if transaction.Type == domain.TypeExpense {
			totals[key].Expenses += transaction.Amount
		}
	}

	out := make([]MonthlyTotals, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	return out, nil
}

type MonthlyTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

func (s *TransactionService) validateCategories(transaction *domain.Transaction) error {
	if transaction.PredefinedCategoryID != nil {
		exists, err := s.categoryService.DoesPredefinedCategoryExist(*transaction.PredefinedCategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidPredefinedCategory
		}
	}
	if transaction.UserCategoryID != nil {
		exists, err := s.categoryService.DoesUserCategoryExist(*transaction.UserCategoryID, transaction.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return financeErrors.ErrInvalidUserCategory
		}
	}
	return nil
}

func (s *TransactionService) CreateTransaction(transaction *domain.Transaction) error {
	transaction.ID = uuid.NewString()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.validateCategories(transaction); err != nil {
		return err
	}
	return s.repo.Save(*transaction)
}

// CreateTransactionsBulk inserts all transactions inside one DB transaction.
// The named return feeds the deferred commit/rollback: any error on the way
// out rolls the whole batch back.
func (s *TransactionService) CreateTransactionsBulk(transactions []*domain.Transaction, userID string) (err error) {
	predefinedCategories, err := s.categoryService.GetAllPredefinedCategories("")
	if err != nil {
		return err
	}

	userCategories, err := s.categoryService.GetAllUserCategories(userID)
	if err != nil {
		return err
	}

	predefinedCategoryMap := make(map[int]bool)
	userCategoryMap := make(map[int]bool)

	for _, category := range predefinedCategories {
		predefinedCategoryMap[category.ID] = true
	}
	for _, category := range userCategories {
		userCategoryMap[category.ID] = true
	}

	tx, err := s.repo.BeginTransaction()
	if err != nil {
		return err
	}
	var validationErrors = &financeErrors.ValidationErrors{}
	defer func() {
		if p := recover(); p != nil {
			safeRollback(tx)
			panic(p)
		} else if err != nil {
			safeRollback(tx)
		} else {
			err = commit(tx)
		}
	}()

	for i, transaction := range transactions {
		transaction.ID = uuid.NewString()
		transaction.RoundToTwoDecimalPlaces()
		transaction.UserID = userID
		if err := transaction.Validate(); err != nil {
			validationErrors.Add(financeErrors.NewIndexedValidationError(i+1, err.Error()))
			continue
		}

		if transaction.PredefinedCategoryID != nil {
			if _, exists := predefinedCategoryMap[*transaction.PredefinedCategoryID]; !exists {
				validationErrors.Add(financeErrors.NewIndexedValidationError(i+1, financeErrors.ErrInvalidPredefinedCategory.Error()))
				continue
			}
		}
		if transaction.UserCategoryID != nil {
			if _, exists := userCategoryMap[*transaction.UserCategoryID]; !exists {
				validationErrors.Add(financeErrors.NewIndexedValidationError(i+1, financeErrors.ErrInvalidUserCategory.Error()))
				continue
			}
		}
		if saveErr := s.repo.SaveWithTransaction(*transaction, tx); saveErr != nil {
			return fmt.Errorf("database error at transaction %d: %w", i+1, saveErr)
		}
	}

	if len(validationErrors.Errors) > 0 {
		return validationErrors
	}
	return nil
}

func safeRollback(tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

func commit(tx *sql.Tx) error {
	if tx == nil {
		return nil
	}
	return tx.Commit()
}

func (s *TransactionService) GetUserTransactions(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	transactions, err := s.repo.GetTransactionsByType(userID, transactionType, startDate, endDate, limit, page)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	return s.repo.GetTransactionsInDateRange(userID, startDate, endDate)
}

func (s *TransactionService) UpdateTransaction(transaction domain.Transaction) error {
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}
	if err := s.validateCategories(&transaction); err != nil {
		return err
	}
	return s.repo.Update(transaction)
}

func (s *TransactionService) DeleteTransaction(transactionID, userID string) error {
	return s.repo.Delete(transactionID, userID)
}

func (s *TransactionService) GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error) {
	return s.repo.GetTransactionSummaryByCategory(userID, startDate, endDate, transactionType)
}
