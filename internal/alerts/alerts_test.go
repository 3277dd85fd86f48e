package alerts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

func tx(day int, txType string, amount float64, description string) domain.Transaction {
	return domain.Transaction{
		Date:        time.Date(2024, time.May, day, 0, 0, 0, 0, time.UTC),
		Type:        txType,
		Amount:      amount,
		Description: description,
	}
}

func codes(alerts []Alert) []string {
	out := make([]string, len(alerts))
	for i, a := range alerts {
		out[i] = a.Code
	}
	return out
}

func TestEvaluate_OverspendIsCritical(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate([]domain.Transaction{
		tx(3, domain.TypeIncome, 1000, "salary"),
		tx(10, domain.TypeExpense, 1400, "rent"),
	}, may, nil)

	assert.Contains(t, codes(alerts), CodeOverspend)
	for _, a := range alerts {
		if a.Code == CodeOverspend {
			assert.Equal(t, SeverityCritical, a.Severity)
			assert.Equal(t, "Expenses exceeded income by 400.00 in May 2024.", a.Message)
		}
	}
}

func TestEvaluate_NoIncomeRecorded(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate([]domain.Transaction{
		tx(4, domain.TypeExpense, 120, "groceries"),
	}, may, nil)

	assert.Contains(t, codes(alerts), CodeNoIncome)
}

func TestEvaluate_EmptyMonthOnlyEmitsSummary(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate(nil, may, nil)

	assert.Equal(t, []string{CodeSummary}, codes(alerts))
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
}

func TestEvaluate_IgnoresOtherMonths(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate([]domain.Transaction{
		{Date: time.Date(2024, time.April, 28, 0, 0, 0, 0, time.UTC), Type: domain.TypeExpense, Amount: 9999},
	}, may, nil)

	assert.Equal(t, []string{CodeSummary}, codes(alerts))
}

func TestEvaluate_BudgetExceeded(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	budgets := []BudgetLine{
		{Category: "Groceries", Limit: 400, Spent: 520.50},
		{Category: "Transport", Limit: 150, Spent: 80},
	}
	alerts := Evaluate([]domain.Transaction{
		tx(2, domain.TypeIncome, 3000, "salary"),
	}, may, budgets)

	var messages []string
	for _, a := range alerts {
		if a.Code == CodeBudgetExceeded {
			messages = append(messages, a.Message)
		}
	}
	assert.Len(t, messages, 1)
	assert.Equal(t, "Budget for Groceries exceeded: spent 520.50 of 400.00.", messages[0])
}

func TestEvaluate_LargeTransaction(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate([]domain.Transaction{
		tx(1, domain.TypeIncome, 5000, "salary"),
		tx(2, domain.TypeExpense, 40, "coffee"),
		tx(3, domain.TypeExpense, 55, "lunch"),
		tx(4, domain.TypeExpense, 65, "petrol"),
		tx(5, domain.TypeExpense, 1200, "new laptop"),
	}, may, nil)

	assert.Contains(t, codes(alerts), CodeLargeTransaction)
}

func TestEvaluate_SummaryTotals(t *testing.T) {
	may := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	alerts := Evaluate([]domain.Transaction{
		tx(1, domain.TypeIncome, 2500, "salary"),
		tx(2, domain.TypeExpense, 1000, "rent"),
	}, may, nil)

	last := alerts[len(alerts)-1]
	assert.Equal(t, CodeSummary, last.Code)
	assert.Equal(t, "May 2024: income 2500.00, expenses 1000.00, net 1500.00.", last.Message)
}
