package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/health"
)

// Money tolerates the formats models actually emit for amounts: plain JSON
// numbers, "1234.56", "1,234.56" and "$12".
type Money float64

func (m *Money) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		*m = Money(number)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("money must be a number or string, got %s", data)
	}
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "$")
	text = strings.ReplaceAll(text, ",", "")
	parsed, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("cannot parse money value %q", text)
	}
	*m = Money(parsed)
	return nil
}

// SummaryResponse is the JSON contract the summary prompt asks the model for.
type SummaryResponse struct {
	Headline         string            `json:"headline"`
	Advice           []string          `json:"advice"`
	SuggestedBudgets []SuggestedBudget `json:"suggested_budgets"`
}

type SuggestedBudget struct {
	Category string `json:"category"`
	Amount   Money  `json:"amount"`
}

const summarySystemPrompt = `You are a personal finance assistant. You are given monthly income and expense totals, a category breakdown for the latest month, and a computed financial health score.
Return only minified JSON in one line. No comments. No markdown.
OUTPUT JSON SCHEMA:
{"headline":string,"advice":[string],"suggested_budgets":[{"category":string,"amount":number}]}
Advice must be short, concrete sentences grounded in the numbers given. Suggest budgets only for expense categories that appear in the breakdown.`

// SummaryInput is everything the summary prompt is built from.
type SummaryInput struct {
	Months     []application.MonthlyTotals
	Categories []CategoryTotal
	Health     health.Result
}

type CategoryTotal struct {
	Name  string
	Total float64
}

func BuildSummaryMessages(input SummaryInput) []openai.ChatCompletionMessage {
	var b strings.Builder
	b.WriteString("Monthly totals (oldest first):\n")
	for _, m := range input.Months {
		fmt.Fprintf(&b, "%s: income %.2f, expenses %.2f\n", m.Month, m.Income, m.Expenses)
	}
	if len(input.Categories) > 0 {
		b.WriteString("Latest month expenses by category:\n")
		for _, c := range input.Categories {
			fmt.Fprintf(&b, "%s: %.2f\n", c.Name, c.Total)
		}
	}
	fmt.Fprintf(&b, "Financial health score: %d/100\n", input.Health.Score)
	for _, insight := range input.Health.Insights {
		fmt.Fprintf(&b, "- %s\n", insight)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: b.String()},
	}
}

const followUpSystemPrompt = `You are a personal finance assistant answering follow-up questions about the user's own numbers. Answer in plain text, two or three sentences, grounded only in the context given. If the context does not contain the answer, say so.`

// BuildFollowUpMessages threads prior question/answer pairs so the model
// keeps conversation context. History alternates user, assistant.
func BuildFollowUpMessages(input SummaryInput, history []openai.ChatCompletionMessage, question string) []openai.ChatCompletionMessage {
	context := BuildSummaryMessages(input)[1].Content
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: followUpSystemPrompt},
		{Role: openai.ChatMessageRoleUser, Content: "Context:\n" + context},
	}
	messages = append(messages, history...)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: question,
	})
	return messages
}

// ParseSummaryResponse decodes the model output, tolerating a fenced code
// block around the JSON.
func ParseSummaryResponse(raw string) (*SummaryResponse, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	var out SummaryResponse
	if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
		logger.Error().Err(err).Str("raw_text", raw).Msg("failed to unmarshal summary JSON")
		return nil, err
	}
	return &out, nil
}
