// Package alerts evaluates fixed rules over one month of transactions and
// emits user-facing notices for the dashboard.
package alerts

import (
	"fmt"
	"time"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

const (
	CodeOverspend        = "overspend"
	CodeNoIncome         = "no_income"
	CodeBudgetExceeded   = "budget_exceeded"
	CodeLargeTransaction = "large_transaction"
	CodeSummary          = "summary"
)

// largeTransactionFactor flags a single expense above this multiple of the
// month's average expense.
const largeTransactionFactor = 3.0

type Alert struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// BudgetLine pairs a category budget with the amount actually spent.
type BudgetLine struct {
	Category string
	Limit    float64
	Spent    float64
}

// Evaluate filters transactions to the given month and applies each rule.
// Budgets are optional; pass nil to skip the budget rule.
func Evaluate(transactions []domain.Transaction, month time.Time, budgets []BudgetLine) []Alert {
	monthly := filterByMonth(transactions, month)

	var income, expenses float64
	var expenseCount int
	var largest domain.Transaction
	for _, t := range monthly {
		switch t.Type {
		case domain.TypeIncome:
			income += t.Amount
		case domain.TypeExpense:
			expenses += t.Amount
			expenseCount++
			if t.Amount > largest.Amount {
				largest = t
			}
		}
	}

	label := month.Format("January 2006")
	var out []Alert

	if expenses > income {
		out = append(out, Alert{
			Code:     CodeOverspend,
			Severity: SeverityCritical,
			Message:  fmt.Sprintf("Expenses exceeded income by %.2f in %s.", expenses-income, label),
		})
	}

	if income == 0 && len(monthly) > 0 {
		out = append(out, Alert{
			Code:     CodeNoIncome,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("No income recorded for %s.", label),
		})
	}

	for _, b := range budgets {
		if b.Spent > b.Limit {
			out = append(out, Alert{
				Code:     CodeBudgetExceeded,
				Severity: SeverityWarning,
				Message:  fmt.Sprintf("Budget for %s exceeded: spent %.2f of %.2f.", b.Category, b.Spent, b.Limit),
			})
		}
	}

	if expenseCount >= 3 {
		avg := expenses / float64(expenseCount)
		if largest.Amount > avg*largeTransactionFactor {
			out = append(out, Alert{
				Code:     CodeLargeTransaction,
				Severity: SeverityInfo,
				Message:  fmt.Sprintf("Unusually large expense of %.2f (%s) in %s.", largest.Amount, largest.Description, label),
			})
		}
	}

	out = append(out, Alert{
		Code:     CodeSummary,
		Severity: SeverityInfo,
		Message:  fmt.Sprintf("%s: income %.2f, expenses %.2f, net %.2f.", label, income, expenses, income-expenses),
	})
	return out
}

func filterByMonth(transactions []domain.Transaction, month time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range transactions {
		if t.Date.Year() == month.Year() && t.Date.Month() == month.Month() {
			out = append(out, t)
		}
	}
	return out
}
