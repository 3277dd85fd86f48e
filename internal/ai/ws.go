package ai

import (
	"net/http"

	"github.com/gorilla/websocket"
	openai "github.com/sashabaranov/go-openai"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatError struct {
	Error string `json:"error"`
}

// Chat upgrades the connection and runs a question/answer loop. Each
// incoming message is a user question; the full exchange so far is resent
// to the model so answers stay in context. The connection closes when the
// client disconnects or the daily limit is hit.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	input, err := h.buildContext(userID)
	if err != nil {
		conn.WriteJSON(chatError{Error: "Failed to gather context"})
		return
	}

	var history []openai.ChatCompletionMessage
	for {
		var msg chatMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Content == "" {
			conn.WriteJSON(chatError{Error: "A question is required"})
			continue
		}

		allowed, err := h.limiter.Allow(r.Context(), callerKey(r))
		if err != nil {
			conn.WriteJSON(chatError{Error: "Failed to check usage limit"})
			continue
		}
		if !allowed {
			conn.WriteJSON(chatError{Error: "Daily AI request limit reached"})
			return
		}

		answer, err := h.completer.Complete(r.Context(), BuildFollowUpMessages(input, history, msg.Content))
		if err != nil {
			conn.WriteJSON(chatError{Error: "AI service is unavailable"})
			continue
		}

		history = append(history,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: msg.Content},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: answer},
		)

		if err := conn.WriteJSON(chatMessage{Role: "assistant", Content: answer}); err != nil {
			return
		}
	}
}
