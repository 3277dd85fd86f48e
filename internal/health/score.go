// Package health computes Finora's financial health score: five weighted
// sub-scores derived from monthly income/expense aggregates, each a
// piecewise-linear clamp between a "bad" and a "good" threshold.
package health

import (
	"fmt"
	"math"
)

// MonthlyAggregate is one month of totals, oldest first in the input slice.
type MonthlyAggregate struct {
	Month         string   `json:"month"` // "2006-01"
	Income        float64  `json:"income"`
	Expenses      float64  `json:"expenses"`
	Savings       *float64 `json:"savings,omitempty"`
	Discretionary *float64 `json:"discretionary,omitempty"`
}

type Options struct {
	EmergencyFundAmount float64 `json:"emergency_fund_amount"`
	LookbackMonths      int     `json:"lookback_months"`
}

// Breakdown holds the five sub-scores before weighting, each in [0, 100].
type Breakdown struct {
	IncomeVsExpenses    float64 `json:"income_vs_expenses"`
	SavingsRate         float64 `json:"savings_rate"`
	SpendingConsistency float64 `json:"spending_consistency"`
	Volatility          float64 `json:"volatility"`
	EmergencyBuffer     float64 `json:"emergency_buffer"`
}

type Result struct {
	Score                  int       `json:"score"`
	Breakdown              Breakdown `json:"breakdown"`
	Insights               []string  `json:"insights"`
	DeltaFromPreviousMonth *int      `json:"delta_from_previous_month"`
}

const (
	weightIncomeVsExpenses    = 0.30
	weightSavingsRate         = 0.25
	weightSpendingConsistency = 0.20
	weightVolatility          = 0.15
	weightEmergencyBuffer     = 0.10

	defaultLookbackMonths = 6

	expenseRatioGood = 0.70
	expenseRatioBad  = 1.20
	savingsRateGood  = 0.20
	savingsRateBad   = 0.00
	expenseCVBad     = 0.60
	incomeCVBad      = 0.50
	bufferMonthsGood = 6.0
)

// Calculate scores the most recent month against the lookback window.
// The result's delta is the score change vs re-running the calculation
// without the newest month; it is nil for single-month input.
func Calculate(months []MonthlyAggregate, opts Options) Result {
	if opts.LookbackMonths <= 0 {
		opts.LookbackMonths = defaultLookbackMonths
	}
	if len(months) == 0 {
		return Result{}
	}

	window := months
	if len(window) > opts.LookbackMonths {
		window = window[len(window)-opts.LookbackMonths:]
	}
	current := window[len(window)-1]

	breakdown := Breakdown{
		IncomeVsExpenses:    scoreIncomeVsExpenses(current),
		SavingsRate:         scoreSavingsRate(current),
		SpendingConsistency: scoreSpendingConsistency(window),
		Volatility:          scoreVolatility(window),
		EmergencyBuffer:     scoreEmergencyBuffer(window, opts.EmergencyFundAmount),
	}

	weighted := breakdown.IncomeVsExpenses*weightIncomeVsExpenses +
		breakdown.SavingsRate*weightSavingsRate +
		breakdown.SpendingConsistency*weightSpendingConsistency +
		breakdown.Volatility*weightVolatility +
		breakdown.EmergencyBuffer*weightEmergencyBuffer

	score := int(math.Round(weighted))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	result := Result{
		Score:     score,
		Breakdown: breakdown,
		Insights:  insights(current, breakdown, opts),
	}

	if len(months) >= 2 {
		previous := Calculate(months[:len(months)-1], opts)
		delta := score - previous.Score
		result.DeltaFromPreviousMonth = &delta
	}
	return result
}

// linearScore maps value onto [0, 100]: 100 at good, 0 at bad, linear in
// between. good and bad may be in either order.
func linearScore(value, good, bad float64) float64 {
	if good == bad {
		if value == good {
			return 100
		}
		return 0
	}
	t := (value - bad) / (good - bad)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * 100
}

func scoreIncomeVsExpenses(m MonthlyAggregate) float64 {
	if m.Income <= 0 {
		if m.Expenses <= 0 {
			return 100
		}
		return 0
	}
	ratio := m.Expenses / m.Income
	return linearScore(ratio, expenseRatioGood, expenseRatioBad)
}

func scoreSavingsRate(m MonthlyAggregate) float64 {
	if m.Income <= 0 {
		return 0
	}
	rate := (m.Income - m.Expenses) / m.Income
	if m.Savings != nil {
		rate = *m.Savings / m.Income
	}
	return linearScore(rate, savingsRateGood, savingsRateBad)
}

func scoreSpendingConsistency(window []MonthlyAggregate) float64 {
	values := make([]float64, len(window))
	for i, m := range window {
		values[i] = m.Expenses
	}
	cv, ok := coefficientOfVariation(values)
	if !ok {
		return 100
	}
	return linearScore(cv, 0, expenseCVBad)
}

func scoreVolatility(window []MonthlyAggregate) float64 {
	values := make([]float64, len(window))
	for i, m := range window {
		values[i] = m.Income
	}
	cv, ok := coefficientOfVariation(values)
	if !ok {
		return 0
	}
	return linearScore(cv, 0, incomeCVBad)
}

func scoreEmergencyBuffer(window []MonthlyAggregate, fund float64) float64 {
	var total float64
	for _, m := range window {
		total += m.Expenses
	}
	avg := total / float64(len(window))
	if avg <= 0 {
		return 100
	}
	bufferMonths := fund / avg
	return linearScore(bufferMonths, bufferMonthsGood, 0)
}

// coefficientOfVariation returns stddev/mean; ok is false when the mean is
// not positive and the ratio is undefined.
func coefficientOfVariation(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean <= 0 {
		return 0, false
	}
	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean, true
}

func insights(current MonthlyAggregate, b Breakdown, opts Options) []string {
	var out []string
	if current.Income > 0 && current.Expenses > current.Income {
		out = append(out, fmt.Sprintf("You spent %.2f more than you earned this month.", current.Expenses-current.Income))
	}
	if current.Income <= 0 {
		out = append(out, "No income was recorded this month.")
	}
	if b.SavingsRate < 50 && current.Income > 0 {
		out = append(out, "Your savings rate is below 10% of income; try setting aside a fixed amount first.")
	}
	if b.SpendingConsistency < 50 {
		out = append(out, "Your spending varies a lot month to month; a budget per category can smooth it out.")
	}
	if b.EmergencyBuffer < 50 {
		out = append(out, "Your emergency fund covers less than 3 months of average expenses.")
	}
	if len(out) == 0 {
		out = append(out, "Your finances look healthy this month. Keep it up!")
	}
	return out
}
