// Package imports extracts transactions from uploaded bank statement PDFs.
// Extraction is line-based: any line carrying a date and an amount becomes a
// candidate transaction, everything else (headers, footers, balances carried
// forward) is skipped.
package imports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

var (
	// Matches MM/DD/YY, MM/DD/YYYY and YYYY-MM-DD.
	datePattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}|\d{2}/\d{2}/\d{2,4}`)
	amountPattern = regexp.MustCompile(`\$?(\d{1,3}(,\d{3})*\.\d{2})`)
)

// incomeKeywords mark a statement line as income rather than an expense.
var incomeKeywords = []string{"deposit", "credit", "payment received", "salary", "refund"}

// ParseStatement opens the PDF at path and extracts transactions from every
// page. It returns an error when the file is not a readable PDF; a readable
// PDF with no recognizable lines yields an empty slice.
func ParseStatement(path string) ([]domain.Transaction, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open statement: %w", err)
	}
	defer f.Close()

	var transactions []domain.Transaction
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageIndex, err)
		}
		transactions = append(transactions, ExtractTransactions(strings.Split(text, "\n"))...)
	}
	return transactions, nil
}

// ExtractTransactions applies the line rules to already-extracted text.
func ExtractTransactions(lines []string) []domain.Transaction {
	var transactions []domain.Transaction
	for _, line := range lines {
		if len(strings.TrimSpace(line)) < 10 {
			continue
		}

		dateMatch := datePattern.FindString(line)
		if dateMatch == "" {
			continue
		}
		date, ok := parseStatementDate(dateMatch)
		if !ok {
			continue
		}

		amountMatches := amountPattern.FindStringSubmatch(line)
		if len(amountMatches) < 2 {
			continue
		}
		amount, err := strconv.ParseFloat(strings.ReplaceAll(amountMatches[1], ",", ""), 64)
		if err != nil || amount <= 0 {
			continue
		}

		transactions = append(transactions, domain.Transaction{
			Amount:      amount,
			Type:        classifyLine(line),
			Date:        date,
			Description: cleanDescription(line, dateMatch, amountMatches[0]),
		})
	}
	return transactions
}

func parseStatementDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "01/02/2006", "01/02/06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func classifyLine(line string) string {
	lower := strings.ToLower(line)
	for _, keyword := range incomeKeywords {
		if strings.Contains(lower, keyword) {
			return domain.TypeIncome
		}
	}
	return domain.TypeExpense
}

// cleanDescription strips the matched date and amount tokens from the line
// and collapses leftover whitespace.
func cleanDescription(line, date, amount string) string {
	description := strings.Replace(line, date, "", 1)
	description = strings.Replace(description, amount, "", 1)
	description = strings.Join(strings.Fields(description), " ")
	if len(description) > 200 {
		description = description[:200]
	}
	return description
}
