package ai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/health"
)

func TestMoneyUnmarshal(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected float64
	}{
		{"plain number", `12.5`, 12.5},
		{"integer", `300`, 300},
		{"numeric string", `"1234.56"`, 1234.56},
		{"comma separated", `"1,234.56"`, 1234.56},
		{"dollar sign", `"$12"`, 12},
		{"dollar with commas", `"$2,500.00"`, 2500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Money
			err := json.Unmarshal([]byte(tc.input), &m)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, float64(m))
		})
	}
}

func TestMoneyUnmarshal_Invalid(t *testing.T) {
	var m Money
	assert.Error(t, json.Unmarshal([]byte(`"twelve"`), &m))
	assert.Error(t, json.Unmarshal([]byte(`{"amount":1}`), &m))
}

func TestParseSummaryResponse(t *testing.T) {
	raw := `{"headline":"Solid month","advice":["Spend less on dining"],"suggested_budgets":[{"category":"Dining","amount":"$150"}]}`
	summary, err := ParseSummaryResponse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "Solid month", summary.Headline)
	assert.Len(t, summary.Advice, 1)
	assert.Equal(t, Money(150), summary.SuggestedBudgets[0].Amount)
}

func TestParseSummaryResponse_FencedJSON(t *testing.T) {
	raw := "```json\n{\"headline\":\"ok\",\"advice\":[],\"suggested_budgets\":[]}\n```"
	summary, err := ParseSummaryResponse(raw)
	assert.NoError(t, err)
	assert.Equal(t, "ok", summary.Headline)
}

func TestParseSummaryResponse_Garbage(t *testing.T) {
	_, err := ParseSummaryResponse("I cannot answer that.")
	assert.Error(t, err)
}

func TestBuildSummaryMessages(t *testing.T) {
	input := SummaryInput{
		Months: []application.MonthlyTotals{
			{Month: "2024-04", Income: 3000, Expenses: 2100},
			{Month: "2024-05", Income: 3000, Expenses: 2600},
		},
		Categories: []CategoryTotal{{Name: "Groceries", Total: 540.20}},
		Health:     health.Result{Score: 72, Insights: []string{"Spending crept up in May."}},
	}

	messages := BuildSummaryMessages(input)
	assert.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[1].Content, "2024-05: income 3000.00, expenses 2600.00")
	assert.Contains(t, messages[1].Content, "Groceries: 540.20")
	assert.Contains(t, messages[1].Content, "Financial health score: 72/100")
	assert.Contains(t, messages[1].Content, "Spending crept up in May.")
}

func TestBuildFollowUpMessages(t *testing.T) {
	input := SummaryInput{
		Months: []application.MonthlyTotals{{Month: "2024-05", Income: 3000, Expenses: 2600}},
	}
	history := BuildFollowUpMessages(input, nil, "How much did I spend in May?")
	assert.Len(t, history, 3)
	assert.Equal(t, "How much did I spend in May?", history[2].Content)
	assert.Contains(t, history[1].Content, "Context:")
}
