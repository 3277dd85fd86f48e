package ai

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Nelly255/Finora/internal/finance/application"
	"github.com/Nelly255/Finora/internal/finance/domain"
	"github.com/Nelly255/Finora/internal/health"
)

// TransactionReader is the slice of the transaction service the AI features
// need to assemble model context.
type TransactionReader interface {
	GetMonthlyAggregates(userID string, startDate, endDate time.Time) ([]application.MonthlyTotals, error)
	GetTransactionSummaryByCategory(userID string, startDate, endDate time.Time, transactionType string) ([]domain.TransactionByCategorySummary, error)
}

type Handler struct {
	completer    Completer
	limiter      *RateLimiter
	transactions TransactionReader
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewHandler(
	completer Completer,
	limiter *RateLimiter,
	transactions TransactionReader,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *Handler {
	return &Handler{
		completer:    completer,
		limiter:      limiter,
		transactions: transactions,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// callerKey identifies the caller for rate limiting: the authenticated user
// when present, the client IP otherwise.
func callerKey(r *http.Request) string {
	if userID, ok := r.Context().Value("userID").(string); ok && userID != "" {
		return "user:" + userID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}

// buildContext gathers the last twelve months of aggregates, the latest
// month's expense breakdown and the health score.
func (h *Handler) buildContext(userID string) (SummaryInput, error) {
	now := time.Now().UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	start := end.AddDate(-1, 0, 0)

	totals, err := h.transactions.GetMonthlyAggregates(userID, start, end)
	if err != nil {
		return SummaryInput{}, err
	}

	monthStart := end.AddDate(0, -1, 0)
	summaries, err := h.transactions.GetTransactionSummaryByCategory(userID, monthStart, end, domain.TypeExpense)
	if err != nil {
		return SummaryInput{}, err
	}

	categories := make([]CategoryTotal, 0, len(summaries))
	for _, s := range summaries {
		categories = append(categories, CategoryTotal{Name: s.CategoryName, Total: s.Total})
	}

	months := make([]health.MonthlyAggregate, 0, len(totals))
	for _, t := range totals {
		months = append(months, health.MonthlyAggregate{Month: t.Month, Income: t.Income, Expenses: t.Expenses})
	}

	return SummaryInput{
		Months:     totals,
		Categories: categories,
		Health:     health.Calculate(months, health.Options{}),
	}, nil
}

func (h *Handler) allow(w http.ResponseWriter, r *http.Request) bool {
	allowed, err := h.limiter.Allow(r.Context(), callerKey(r))
	if err != nil {
		logger.Error().Err(err).Msg("rate limit check failed")
		h.respondError(w, http.StatusInternalServerError, "Failed to check usage limit")
		return false
	}
	if !allowed {
		h.respondError(w, http.StatusTooManyRequests, "Daily AI request limit reached")
		return false
	}
	return true
}

func (h *Handler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if !h.allow(w, r) {
		return
	}

	input, err := h.buildContext(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to gather summary data")
		return
	}
	if len(input.Months) == 0 {
		h.respondError(w, http.StatusUnprocessableEntity, "Not enough transaction history for a summary")
		return
	}

	raw, err := h.completer.Complete(r.Context(), BuildSummaryMessages(input))
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "AI service is unavailable")
		return
	}

	summary, err := ParseSummaryResponse(raw)
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "AI service returned an unreadable summary")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Summary generated successfully.",
		"data": map[string]interface{}{
			"summary":      summary,
			"health_score": input.Health,
		},
	})
}

type followUpRequest struct {
	Question string `json:"question"`
	History  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"history"`
}

func (h *Handler) FollowUp(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req followUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		h.respondError(w, http.StatusBadRequest, "A question is required")
		return
	}

	if !h.allow(w, r) {
		return
	}

	input, err := h.buildContext(userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to gather context")
		return
	}

	history := make([]openai.ChatCompletionMessage, 0, len(req.History))
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		history = append(history, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}

	answer, err := h.completer.Complete(r.Context(), BuildFollowUpMessages(input, history, req.Question))
	if err != nil {
		h.respondError(w, http.StatusBadGateway, "AI service is unavailable")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Answer generated successfully.",
		"data":    map[string]interface{}{"answer": answer},
	})
}
