package infrastructure

import (
	"database/sql"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type SubscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Save(subscription domain.Subscription) error {
	_, err := r.db.Exec(
		`INSERT INTO subscriptions (id, user_id, name, amount, cadence, next_due_date, predefined_category_id)
         VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		subscription.ID, subscription.UserID, subscription.Name, subscription.Amount,
		subscription.Cadence, subscription.NextDueDate, subscription.PredefinedCategoryID,
	)
	return err
}

func (r *SubscriptionRepository) FindByUser(userID string) ([]domain.Subscription, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, amount, cadence, next_due_date, predefined_category_id
         FROM subscriptions WHERE user_id = $1 ORDER BY next_due_date`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func (r *SubscriptionRepository) FindByID(subscriptionID, userID string) (*domain.Subscription, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, name, amount, cadence, next_due_date, predefined_category_id
         FROM subscriptions WHERE id = $1 AND user_id = $2`, subscriptionID, userID)

	var subscription domain.Subscription
	err := row.Scan(&subscription.ID, &subscription.UserID, &subscription.Name, &subscription.Amount,
		&subscription.Cadence, &subscription.NextDueDate, &subscription.PredefinedCategoryID)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *SubscriptionRepository) FindDue(asOf time.Time) ([]domain.Subscription, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, amount, cadence, next_due_date, predefined_category_id
         FROM subscriptions WHERE next_due_date <= $1 ORDER BY next_due_date`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubscriptions(rows)
}

func (r *SubscriptionRepository) Update(subscription domain.Subscription) error {
	result, err := r.db.Exec(
		`UPDATE subscriptions
         SET name = $1, amount = $2, cadence = $3, next_due_date = $4, predefined_category_id = $5
         WHERE id = $6 AND user_id = $7`,
		subscription.Name, subscription.Amount, subscription.Cadence, subscription.NextDueDate,
		subscription.PredefinedCategoryID, subscription.ID, subscription.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrSubscriptionNotFound
	}
	return nil
}

func (r *SubscriptionRepository) Delete(subscriptionID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`, subscriptionID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrSubscriptionNotFound
	}
	return nil
}

func scanSubscriptions(rows *sql.Rows) ([]domain.Subscription, error) {
	var subscriptions []domain.Subscription
	for rows.Next() {
		var subscription domain.Subscription
		if err := rows.Scan(&subscription.ID, &subscription.UserID, &subscription.Name, &subscription.Amount,
			&subscription.Cadence, &subscription.NextDueDate, &subscription.PredefinedCategoryID); err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, subscription)
	}
	return subscriptions, rows.Err()
}
