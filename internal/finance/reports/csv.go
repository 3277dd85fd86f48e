// Package reports renders a user's transactions as downloadable CSV and
// printable HTML documents.
package reports

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

// CategoryNames resolves the two category namespaces to display names.
type CategoryNames struct {
	Predefined map[int]string
	User       map[int]string
}

func (n CategoryNames) Resolve(t domain.Transaction) string {
	if t.PredefinedCategoryID != nil {
		return n.Predefined[*t.PredefinedCategoryID]
	}
	if t.UserCategoryID != nil {
		return n.User[*t.UserCategoryID]
	}
	return ""
}

// WriteTransactionsCSV writes the export format: type,amount,date,category,description.
// Amounts are rendered with exactly two decimal places.
func WriteTransactionsCSV(w io.Writer, transactions []domain.Transaction, names CategoryNames) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"type", "amount", "date", "category", "description"}); err != nil {
		return err
	}

	for _, t := range transactions {
		rec := []string{
			t.Type,
			decimal.NewFromFloat(t.Amount).StringFixed(2),
			t.Date.Format("2006-01-02"),
			names.Resolve(t),
			t.Description,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	return cw.Error()
}
