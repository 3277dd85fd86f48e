package interfaces

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Nelly255/Finora/internal/finance/domain"
)

func multipartStatement(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func authedUpload(body *bytes.Buffer, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/imports/statement", body)
	req.Header.Set("Content-Type", contentType)
	ctx := context.WithValue(req.Context(), "userID", "user-1")
	return req.WithContext(ctx)
}

func TestImportStatement(t *testing.T) {
	service := &MockTransactionService{}
	handler := NewImportHandler(service, respondJSON, respondError)
	handler.parse = func(path string) ([]domain.Transaction, error) {
		return []domain.Transaction{
			{Amount: 54.20, Type: domain.TypeExpense, Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC), Description: "GROCERY MART"},
			{Amount: 2500, Type: domain.TypeIncome, Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), Description: "SALARY"},
		}, nil
	}

	body, contentType := multipartStatement(t, "statement", "may.pdf", []byte("%PDF-1.4 fake"))
	w := httptest.NewRecorder()
	handler.ImportStatement(w, authedUpload(body, contentType))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, service.Saved, 2)
	assert.Equal(t, "user-1", service.Saved[0].UserID)
}

func TestImportStatement_RejectsNonPDF(t *testing.T) {
	handler := NewImportHandler(&MockTransactionService{}, respondJSON, respondError)

	body, contentType := multipartStatement(t, "statement", "may.csv", []byte("a,b,c"))
	w := httptest.NewRecorder()
	handler.ImportStatement(w, authedUpload(body, contentType))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestImportStatement_MissingFile(t *testing.T) {
	handler := NewImportHandler(&MockTransactionService{}, respondJSON, respondError)

	body, contentType := multipartStatement(t, "other_field", "may.pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	handler.ImportStatement(w, authedUpload(body, contentType))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestImportStatement_EmptyStatement(t *testing.T) {
	handler := NewImportHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.parse = func(path string) ([]domain.Transaction, error) {
		return nil, nil
	}

	body, contentType := multipartStatement(t, "statement", "empty.pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	handler.ImportStatement(w, authedUpload(body, contentType))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Result().StatusCode)
}
