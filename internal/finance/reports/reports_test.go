package reports

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

func intPtr(v int) *int { return &v }

func sampleNames() CategoryNames {
	return CategoryNames{
		Predefined: map[int]string{1: "Groceries", 2: "Salary"},
		User:       map[int]string{10: "Board games"},
	}
}

func TestWriteTransactionsCSV(t *testing.T) {
	transactions := []domain.Transaction{
		{
			Amount:               2500,
			Type:                 domain.TypeIncome,
			Date:                 time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Description:          "May salary",
			PredefinedCategoryID: intPtr(2),
		},
		{
			Amount:         49.9,
			Type:           domain.TypeExpense,
			Date:           time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
			Description:    "Catan expansion",
			UserCategoryID: intPtr(10),
		},
		{
			Amount:      5,
			Type:        domain.TypeExpense,
			Date:        time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
			Description: "Coffee",
		},
	}

	var buf bytes.Buffer
	err := WriteTransactionsCSV(&buf, transactions, sampleNames())
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "type,amount,date,category,description", lines[0])
	assert.Equal(t, "income,2500.00,2024-05-01,Salary,May salary", lines[1])
	assert.Equal(t, "expense,49.90,2024-05-12,Board games,Catan expansion", lines[2])
	assert.Equal(t, "expense,5.00,2024-05-13,,Coffee", lines[3])
}

func TestWriteTransactionsCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTransactionsCSV(&buf, nil, CategoryNames{})
	assert.NoError(t, err)
	assert.Equal(t, "type,amount,date,category,description\n", buf.String())
}

func TestWriteHTMLReport(t *testing.T) {
	data := ReportData{
		GeneratedAt: time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Names:       sampleNames(),
		Transactions: []domain.Transaction{
			{
				Amount:               2000,
				Type:                 domain.TypeIncome,
				Date:                 time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
				Description:          "Salary",
				PredefinedCategoryID: intPtr(2),
			},
			{
				Amount:               120.5,
				Type:                 domain.TypeExpense,
				Date:                 time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
				Description:          "Weekly shop",
				PredefinedCategoryID: intPtr(1),
			},
		},
		Budgets: []domain.BudgetStatus{
			{
				Budget:       domain.Budget{Limit: 100},
				CategoryName: "Groceries",
				Spent:        120.5,
				Remaining:    -20.5,
				OverLimit:    true,
			},
		},
	}

	var buf bytes.Buffer
	err := WriteHTMLReport(&buf, data)
	assert.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "2024-05-01 to 2024-05-31")
	assert.Contains(t, html, "Income: 2000.00")
	assert.Contains(t, html, "Expenses: 120.50")
	assert.Contains(t, html, "Net: 1879.50")
	assert.Contains(t, html, "Weekly shop")
	assert.Contains(t, html, `class="over"`)
}

func TestWriteHTMLReport_EscapesDescriptions(t *testing.T) {
	data := ReportData{
		GeneratedAt: time.Now(),
		PeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Transactions: []domain.Transaction{
			{
				Amount:      10,
				Type:        domain.TypeExpense,
				Date:        time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
				Description: "<script>alert(1)</script>",
			},
		},
	}

	var buf bytes.Buffer
	err := WriteHTMLReport(&buf, data)
	assert.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
