package infrastructure

import (
	"database/sql"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
)

type SavingsGoalRepository struct {
	db *sql.DB
}

func NewSavingsGoalRepository(db *sql.DB) *SavingsGoalRepository {
	return &SavingsGoalRepository{db: db}
}

func (r *SavingsGoalRepository) Save(goal domain.SavingsGoal) error {
	_, err := r.db.Exec(
		`INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, deadline)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline,
	)
	return err
}

func (r *SavingsGoalRepository) FindByUser(userID string) ([]domain.SavingsGoal, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, name, target_amount, current_amount, deadline
         FROM savings_goals WHERE user_id = $1 ORDER BY name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.SavingsGoal
	for rows.Next() {
		var goal domain.SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *SavingsGoalRepository) FindByID(goalID, userID string) (*domain.SavingsGoal, error) {
	row := r.db.QueryRow(
		`SELECT id, user_id, name, target_amount, current_amount, deadline
         FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID)

	var goal domain.SavingsGoal
	err := row.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline)
	if err == sql.ErrNoRows {
		return nil, financeErrors.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *SavingsGoalRepository) Update(goal domain.SavingsGoal) error {
	result, err := r.db.Exec(
		`UPDATE savings_goals
         SET name = $1, target_amount = $2, current_amount = $3, deadline = $4
         WHERE id = $5 AND user_id = $6`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.ID, goal.UserID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrGoalNotFound
	}
	return nil
}

func (r *SavingsGoalRepository) Delete(goalID, userID string) error {
	result, err := r.db.Exec(`DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrGoalNotFound
	}
	return nil
}
