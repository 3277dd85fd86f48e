package infrastructure

import (
	"database/sql"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) Save(budget domain.Budget) error {
	_, err := r.db.Exec(
		`INSERT INTO budgets (id, user_id, category_id, month, limit_amount) VALUES ($1, $2, $3, $4, $5)`,
		budget.ID, budget.UserID, budget.CategoryID, budget.Month, budget.Limit,
	)
	return err
}

func (r *BudgetRepository) FindByUserAndMonth(userID, month string) ([]domain.Budget, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, category_id, month, limit_amount FROM budgets WHERE user_id = $1 AND month = $2`,
		userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Month, &budget.Limit); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) FindByID(budgetID, userID string) (*domain.Budget, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, category_id, month, limit_amount FROM budgets WHERE id = $1 AND user_id = $2`,
		budgetID, userID)

	var budget domain.Budget
	err := row.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Month, &budget.Limit)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrBudgetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *BudgetRepository) Update(budget domain.Budget) error {
	result, err := r.db.Exec(
		`UPDATE budgets SET category_id = $1, month = $2, limit_amount = $3 WHERE id = $4 AND user_id = $5`,
		budget.CategoryID, budget.Month, budget.Limit, budget.ID, budget.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBudgetNotFound
	}
	return nil
}

func (r *BudgetRepository) Delete(budgetID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, budgetID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBudgetNotFound
	}
	return nil
}
