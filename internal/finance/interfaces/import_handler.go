package interfaces

import (
	"errors"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/Nelly255/Finora/internal/finance/domain"
	financeErrors "github.com/Nelly255/Finora/internal/finance/errors"
	"github.com/Nelly255/Finora/internal/finance/imports"
)

// maxStatementSize caps uploaded statement PDFs at 10 MB.
const maxStatementSize = 10 << 20

type StatementParser func(path string) ([]domain.Transaction, error)

type ImportHandler struct {
	service      TransactionServiceInterface
	parse        StatementParser
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewImportHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ImportHandler {
	return &ImportHandler{
		service:      service,
		parse:        imports.ParseStatement,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// ImportStatement accepts a multipart PDF upload under the "statement" field,
// extracts its transactions and saves them in one atomic batch. The parsed
// transactions are returned so the client can show what was imported.
func (h *ImportHandler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxStatementSize)
	if err := r.ParseMultipartForm(maxStatementSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid upload, expected a multipart form under 10MB")
		return
	}

	file, header, err := r.FormFile("statement")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Missing statement file")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		h.respondError(w, http.StatusBadRequest, "Statement must be a PDF file")
		return
	}

	tmp, err := os.CreateTemp("", "finora-statement-*.pdf")
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to process statement")
		return
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := io.Copy(tmp, file); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to process statement")
		return
	}

	transactions, err := h.parse(tmp.Name())
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Could not read the statement PDF")
		return
	}
	if len(transactions) == 0 {
		h.respondError(w, http.StatusUnprocessableEntity, "No transactions found in the statement")
		return
	}

	batch := make([]*domain.Transaction, len(transactions))
	for i := range transactions {
		batch[i] = &transactions[i]
	}

	if err := h.service.CreateTransactionsBulk(batch, userID); err != nil {
		if financeErrors.IsValidationErrors(err) {
			var validationErrors *financeErrors.ValidationErrors
			errors.As(err, &validationErrors)
			errorMessages := make([]string, len(validationErrors.Errors))
			for i, vErr := range validationErrors.Errors {
				errorMessages[i] = vErr.Error()
			}
			h.respondError(w, http.StatusBadRequest, "Statement contained invalid transactions", errorMessages)
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to import statement")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Statement imported successfully.",
		"data": map[string]interface{}{
			"imported":     len(batch),
			"transactions": batch,
		},
	})
}
