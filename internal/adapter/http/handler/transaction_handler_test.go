package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

type transactionServiceStub struct {
	addFn        func(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error)
	listFn       func(ctx context.Context, userID, token string) ([]domain.Transaction, error)
	listForDayFn func(ctx context.Context, userID, day string) (*usecase.DayTransactions, error)
}

func (s *transactionServiceStub) Add(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error) {
	return s.addFn(ctx, input)
}

func (s *transactionServiceStub) List(ctx context.Context, userID, token string) ([]domain.Transaction, error) {
	return s.listFn(ctx, userID, token)
}

func (s *transactionServiceStub) ListForDay(ctx context.Context, userID, day string) (*usecase.DayTransactions, error) {
	return s.listForDayFn(ctx, userID, day)
}

func TestTransactionHandler_Create_Success(t *testing.T) {
	var captured usecase.AddTransactionInput
	h := NewTransactionHandler(&transactionServiceStub{
		addFn: func(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error) {
			captured = input
			return &domain.Transaction{
				ID:          "tx-1",
				UserID:      input.UserID,
				Type:        input.Type,
				Category:    input.Category,
				Description: domain.DefaultDescription,
				Amount:      input.Amount,
				OccurredAt:  *input.OccurredAt,
			}, nil
		},
	}, time.UTC)

	req := withUser(httptest.NewRequest(http.MethodPost, "/transactions",
		bytes.NewBufferString(`{"type":"Expense","category":"Food","amount":"120.50","date":"2024-06-01"}`)), "u1")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.UserID != "u1" || captured.Type != domain.TransactionTypeExpense || !captured.Amount.Equal(decimal.RequireFromString("120.5")) {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.Description != domain.DefaultDescription {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_Create_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		addErr error
		want   int
	}{
		{"malformed body", `{`, nil, http.StatusBadRequest},
		{"unknown type", `{"type":"Gift","amount":10}`, nil, http.StatusBadRequest},
		{"bad date", `{"type":"Income","amount":10,"date":"June"}`, nil, http.StatusBadRequest},
		{"non-positive amount", `{"type":"Income","amount":0}`, domain.ErrInvalidAmount, http.StatusBadRequest},
		{"duplicate", `{"type":"Income","amount":10}`, domain.ErrDuplicateTransaction, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransactionHandler(&transactionServiceStub{
				addFn: func(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error) {
					return nil, tt.addErr
				},
			}, nil)

			rec := httptest.NewRecorder()
			h.Create(rec, withUser(httptest.NewRequest(http.MethodPost, "/transactions", bytes.NewBufferString(tt.body)), "u1"))

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTransactionHandler_List_Paginates(t *testing.T) {
	txs := make([]domain.Transaction, 5)
	for i := range txs {
		txs[i] = domain.Transaction{ID: fmt.Sprintf("tx-%d", i), Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(1)}
	}

	var gotToken string
	h := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, userID, token string) ([]domain.Transaction, error) {
			gotToken = token
			return txs, nil
		},
	}, time.UTC)

	rec := httptest.NewRecorder()
	h.List(rec, withUser(httptest.NewRequest(http.MethodGet, "/transactions?filter=7DAYS&limit=2&offset=3", nil), "u1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotToken != "7days" {
		t.Fatalf("expected normalized token, got %q", gotToken)
	}

	var resp dto.TransactionListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 5 || len(resp.Transactions) != 2 || resp.Transactions[0].ID != "tx-3" {
		t.Fatalf("unexpected page %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.List(rec, withUser(httptest.NewRequest(http.MethodGet, "/transactions?offset=50", nil), "u1"))
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if gotToken != "all" || len(resp.Transactions) != 0 {
		t.Fatalf("expected empty page over all history, got token=%q %+v", gotToken, resp)
	}
}

func TestTransactionHandler_ListForDay(t *testing.T) {
	h := NewTransactionHandler(&transactionServiceStub{
		listForDayFn: func(ctx context.Context, userID, day string) (*usecase.DayTransactions, error) {
			if day != "2024-06-01" {
				return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, day)
			}
			return &usecase.DayTransactions{
				Date:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
				Income: []domain.Transaction{{ID: "tx-1", Amount: decimal.NewFromInt(500)}},
			}, nil
		},
	}, time.UTC)

	router := chi.NewRouter()
	router.Get("/transactions/day/{date}", h.ListForDay)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/transactions/day/2024-06-01", nil), "u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.DayTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Date != "2024-06-01" || len(resp.Income) != 1 || !resp.TotalIncome.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/transactions/day/yesterday", nil), "u1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
