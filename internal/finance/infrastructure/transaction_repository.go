package infrastructure

import (
	"database/sql"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Save(transaction domain.Transaction) error {
	_, err := r.db.Exec(
		`INSERT INTO transactions
        (id, user_id, amount, type, date, description, predefined_category_id, user_category_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Date, transaction.Description, transaction.PredefinedCategoryID, transaction.UserCategoryID,
	)
	return err
}

func (r *TransactionRepository) BeginTransaction() (*sql.Tx, error) {
	return r.db.Begin()
}

func (r *TransactionRepository) SaveWithTransaction(transaction domain.Transaction, tx *sql.Tx) error {
	_, err := tx.Exec(
		`INSERT INTO transactions
        (id, user_id, amount, type, date, description, predefined_category_id, user_category_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		transaction.ID, transaction.UserID, transaction.Amount, transaction.Type,
		transaction.Date, transaction.Description, transaction.PredefinedCategoryID, transaction.UserCategoryID,
	)
	return err
}

func (r *TransactionRepository) FindByUser(userID string) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, amount, type, date, description, predefined_category_id, user_category_id
         FROM transactions WHERE user_id = $1 ORDER BY date DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *TransactionRepository) FindByID(transactionID, userID string) (*domain.Transaction, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, amount, type, date, description, predefined_category_id, user_category_id
         FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)

	var transaction domain.Transaction
	err := row.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
		&transaction.Date, &transaction.Description, &transaction.PredefinedCategoryID, &transaction.UserCategoryID)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *TransactionRepository) Update(transaction domain.Transaction) error {
	result, err := r.db.Exec(
		`UPDATE transactions
         SET amount = $1, type = $2, date = $3, description = $4, predefined_category_id = $5, user_category_id = $6
         WHERE id = $7 AND user_id = $8`,
		transaction.Amount, transaction.Type, transaction.Date, transaction.Description,
		transaction.PredefinedCategoryID, transaction.UserCategoryID, transaction.ID, transaction.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(transactionID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, transactionID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) GetTransactionsInDateRange(userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, amount, type, date, description, predefined_category_id, user_category_id
         FROM transactions WHERE user_id = $1 AND date >= $2 AND date < $3 ORDER BY date`,
		userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *TransactionRepository) GetTransactionsByType(userID, transactionType string, startDate, endDate time.Time, limit, page int) ([]domain.Transaction, error) {
	query := `SELECT id, user_id, amount, type, date, description, predefined_category_id, user_category_id
              FROM transactions
              WHERE user_id = $1 AND date >= $2 AND date < $3`
	args := []interface{}{userID, startDate, endDate}

	if transactionType != "" {
		query += ` AND type = $4 ORDER BY date DESC LIMIT $5 OFFSET $6`
		args = append(args, transactionType, limit, (page-1)*limit)
	} else {
		query += ` ORDER BY date DESC LIMIT $4 OFFSET $5`
		args = append(args, limit, (page-1)*limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (r *TransactionRepository) GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error) {
	rows, err := r.db.Query(
		`SELECT COALESCE(t.predefined_category_id, t.user_category_id, 0) AS category_id,
                COALESCE(pc.name, uc.name, 'Uncategorized') AS category_name,
                SUM(t.amount) AS total,
                COUNT(*) AS count
         FROM transactions t
         LEFT JOIN predefined_categories pc ON pc.id = t.predefined_category_id
         LEFT JOIN user_categories uc ON uc.id = t.user_category_id AND uc.user_id = t.user_id
         WHERE t.user_id = $1 AND t.date >= $2 AND t.date < $3 AND t.type = $4
         GROUP BY 1, 2
         ORDER BY total DESC`,
		userID, startDate, endDate, transactionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategorySummaries(rows)
}

// GetExpensesByPredefinedCategory totals expenses per predefined category only.
// Budgets are keyed by predefined category ids, and user category ids live in a
// separate keyspace, so user-category spending must never count here.
func (r *TransactionRepository) GetExpensesByPredefinedCategory(userID string, startDate, endDate time.Time) ([]domain.TransactionByCategorySummary, error) {
	rows, err := r.db.Query(
		`SELECT t.predefined_category_id AS category_id,
                pc.name AS category_name,
                SUM(t.amount) AS total,
                COUNT(*) AS count
         FROM transactions t
         JOIN predefined_categories pc ON pc.id = t.predefined_category_id
         WHERE t.user_id = $1 AND t.date >= $2 AND t.date < $3 AND t.type = $4
         GROUP BY t.predefined_category_id, pc.name
         ORDER BY total DESC`,
		userID, startDate, endDate, domain.TypeExpense)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCategorySummaries(rows)
}

func scanCategorySummaries(rows *sql.Rows) ([]domain.TransactionByCategorySummary, error) {
	var summaries []domain.TransactionByCategorySummary
	for rows.Next() {
		var summary domain.TransactionByCategorySummary
		if err := rows.Scan(&summary.CategoryID, &summary.CategoryName, &summary.Total, &summary.Count); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(&transaction.ID, &transaction.UserID, &transaction.Amount, &transaction.Type,
			&transaction.Date, &transaction.Description, &transaction.PredefinedCategoryID, &transaction.UserCategoryID); err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, rows.Err()
}
