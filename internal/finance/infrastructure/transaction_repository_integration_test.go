package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

const testSchema = `
CREATE TABLE predefined_categories (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	type TEXT NOT NULL
);

CREATE TABLE user_categories (
	id SERIAL PRIMARY KEY,
	user_id UUID NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE transactions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	amount NUMERIC(12,2) NOT NULL,
	type TEXT NOT NULL,
	date TIMESTAMPTZ NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	predefined_category_id INT REFERENCES predefined_categories(id),
	user_category_id INT REFERENCES user_categories(id)
);

INSERT INTO predefined_categories (name, type) VALUES ('Groceries', 'expense'), ('Salary', 'income');
`

// startPostgres spins up a throwaway database with the schema loaded.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("finora_test"),
		postgres.WithUsername("finora"),
		postgres.WithPassword("finora"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	return db
}

func TestTransactionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	db := startPostgres(t)
	repo := NewTransactionRepository(db)

	userID := "0b8f8a1e-3f0e-4a71-9d5e-111111111111"
	otherUser := "0b8f8a1e-3f0e-4a71-9d5e-222222222222"
	groceries := 1
	salary := 2

	save := func(id string, amount float64, txType string, day int, categoryID *int) domain.Transaction {
		transaction := domain.Transaction{
			ID:                   id,
			UserID:               userID,
			Amount:               amount,
			Type:                 txType,
			Date:                 time.Date(2024, 5, day, 12, 0, 0, 0, time.UTC),
			Description:          "integration",
			PredefinedCategoryID: categoryID,
		}
		require.NoError(t, repo.Save(transaction))
		return transaction
	}

	t.Run("save and find by user", func(t *testing.T) {
		save("11111111-1111-1111-1111-111111111111", 2500, domain.TypeIncome, 1, &salary)
		save("22222222-2222-2222-2222-222222222222", 120.50, domain.TypeExpense, 3, &groceries)

		transactions, err := repo.FindByUser(userID)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)

		none, err := repo.FindByUser(otherUser)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("date range excludes the end day", func(t *testing.T) {
		transactions, err := repo.GetTransactionsInDateRange(userID,
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
		assert.Equal(t, 2500.0, transactions[0].Amount)
	})

	t.Run("summary by category", func(t *testing.T) {
		save("33333333-3333-3333-3333-333333333333", 80.25, domain.TypeExpense, 10, &groceries)

		summaries, err := repo.GetTransactionSummaryByCategory(userID,
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			domain.TypeExpense)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Groceries", summaries[0].CategoryName)
		assert.Equal(t, 200.75, summaries[0].Total)
		assert.Equal(t, 2, summaries[0].Count)
	})

	t.Run("update scoped to owner", func(t *testing.T) {
		transaction := save("44444444-4444-4444-4444-444444444444", 10, domain.TypeExpense, 15, nil)

		transaction.UserID = otherUser
		err := repo.Update(transaction)
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)

		transaction.UserID = userID
		transaction.Amount = 12.34
		require.NoError(t, repo.Update(transaction))

		found, err := repo.FindByID(transaction.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, 12.34, found.Amount)
	})

	t.Run("delete", func(t *testing.T) {
		transaction := save("55555555-5555-5555-5555-555555555555", 1, domain.TypeExpense, 20, nil)

		assert.ErrorIs(t, repo.Delete(transaction.ID, otherUser), financeErrors.ErrTransactionNotFound)
		require.NoError(t, repo.Delete(transaction.ID, userID))
		_, err := repo.FindByID(transaction.ID, userID)
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})

	t.Run("budget spending counts predefined categories only", func(t *testing.T) {
		var userCategoryID int
		require.NoError(t, db.QueryRow(
			`INSERT INTO user_categories (user_id, name) VALUES ($1, 'Board games') RETURNING id`,
			userID).Scan(&userCategoryID))
		// both SERIAL sequences start at 1, so the ids collide
		require.Equal(t, groceries, userCategoryID)

		_, err := db.Exec(
			`INSERT INTO transactions (id, user_id, amount, type, date, description, user_category_id)
			 VALUES ('88888888-8888-8888-8888-888888888888', $1, 500, 'expense', $2, 'expansion haul', $3)`,
			userID, time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), userCategoryID)
		require.NoError(t, err)

		summaries, err := repo.GetExpensesByPredefinedCategory(userID,
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, groceries, summaries[0].CategoryID)
		assert.Equal(t, "Groceries", summaries[0].CategoryName)
		assert.Equal(t, 200.75, summaries[0].Total)
		assert.Equal(t, 2, summaries[0].Count)
	})

	t.Run("bulk insert commits atomically", func(t *testing.T) {
		tx, err := repo.BeginTransaction()
		require.NoError(t, err)

		first := domain.Transaction{
			ID: "66666666-6666-6666-6666-666666666666", UserID: userID,
			Amount: 5, Type: domain.TypeExpense,
			Date: time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC),
		}
		second := domain.Transaction{
			ID: "77777777-7777-7777-7777-777777777777", UserID: userID,
			Amount: 6, Type: domain.TypeExpense,
			Date: time.Date(2024, 5, 22, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.SaveWithTransaction(first, tx))
		require.NoError(t, repo.SaveWithTransaction(second, tx))
		require.NoError(t, tx.Rollback())

		_, err = repo.FindByID(first.ID, userID)
		assert.ErrorIs(t, err, financeErrors.ErrTransactionNotFound)
	})
}
