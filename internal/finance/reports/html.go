package reports

import (
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

// ReportData is everything the printable monthly report needs, already
// filtered to one user and one period.
type ReportData struct {
	GeneratedAt  time.Time
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Transactions []domain.Transaction
	Names        CategoryNames
	Budgets      []domain.BudgetStatus
}

type reportRow struct {
	Date        string
	Type        string
	Category    string
	Amount      string
	Description string
}

type reportView struct {
	GeneratedAt string
	Period      string
	Income      string
	Expenses    string
	Net         string
	Rows        []reportRow
	Budgets     []budgetRow
}

type budgetRow struct {
	Category  string
	Limit     string
	Spent     string
	Remaining string
	OverLimit bool
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Finora Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2em; }
th, td { border: 1px solid #ccc; padding: 6px 10px; text-align: left; }
th { background: #f4f4f4; }
td.amount { text-align: right; }
tr.over td { color: #b00020; }
.totals { margin-bottom: 2em; }
.totals span { margin-right: 2em; }
</style>
</head>
<body>
<h1>Finora Report — {{.Period}}</h1>
<p>Generated {{.GeneratedAt}}</p>
<div class="totals">
<span>Income: {{.Income}}</span>
<span>Expenses: {{.Expenses}}</span>
<span>Net: {{.Net}}</span>
</div>
{{if .Budgets}}
<h2>Budgets</h2>
<table>
<tr><th>Category</th><th>Limit</th><th>Spent</th><th>Remaining</th></tr>
{{range .Budgets}}
<tr{{if .OverLimit}} class="over"{{end}}><td>{{.Category}}</td><td class="amount">{{.Limit}}</td><td class="amount">{{.Spent}}</td><td class="amount">{{.Remaining}}</td></tr>
{{end}}
</table>
{{end}}
<h2>Transactions</h2>
<table>
<tr><th>Date</th><th>Type</th><th>Category</th><th>Amount</th><th>Description</th></tr>
{{range .Rows}}
<tr><td>{{.Date}}</td><td>{{.Type}}</td><td>{{.Category}}</td><td class="amount">{{.Amount}}</td><td>{{.Description}}</td></tr>
{{end}}
</table>
</body>
</html>
`))

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WriteHTMLReport renders the printable report. Transaction text passes
// through html/template so user-entered descriptions are escaped.
func WriteHTMLReport(w io.Writer, data ReportData) error {
	var income, expenses float64
	rows := make([]reportRow, 0, len(data.Transactions))
	for _, t := range data.Transactions {
		if t.Type == domain.TypeIncome {
			income += t.Amount
		} else if t.Type == domain.TypeExpense {
			expenses += t.Amount
		}
		rows = append(rows, reportRow{
			Date:        t.Date.Format("2006-01-02"),
			Type:        t.Type,
			Category:    data.Names.Resolve(t),
			Amount:      money(t.Amount),
			Description: t.Description,
		})
	}

	budgets := make([]budgetRow, 0, len(data.Budgets))
	for _, b := range data.Budgets {
		budgets = append(budgets, budgetRow{
			Category:  b.CategoryName,
			Limit:     money(b.Budget.Limit),
			Spent:     money(b.Spent),
			Remaining: money(b.Remaining),
			OverLimit: b.OverLimit,
		})
	}

	view := reportView{
		GeneratedAt: data.GeneratedAt.Format("2006-01-02 15:04"),
		Period:      data.PeriodStart.Format("2006-01-02") + " to " + data.PeriodEnd.AddDate(0, 0, -1).Format("2006-01-02"),
		Income:      money(income),
		Expenses:    money(expenses),
		Net:         money(income - expenses),
		Rows:        rows,
		Budgets:     budgets,
	}
	return reportTemplate.Execute(w, view)
}
