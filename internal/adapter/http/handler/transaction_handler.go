package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
	"github.com/iho/finlab/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	Add(ctx context.Context, input usecase.AddTransactionInput) (*domain.Transaction, error)
	List(ctx context.Context, userID, token string) ([]domain.Transaction, error)
	ListForDay(ctx context.Context, userID, day string) (*usecase.DayTransactions, error)
}

// TransactionHandler handles transaction entry and listing.
type TransactionHandler struct {
	transactionUC TransactionService
	loc           *time.Location
}

// NewTransactionHandler creates a new TransactionHandler. Dates given
// without a zone are read in loc.
func NewTransactionHandler(transactionUC TransactionService, loc *time.Location) *TransactionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TransactionHandler{transactionUC: transactionUC, loc: loc}
}

// Create records an income or expense.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(user.ID, h.loc)
	if err != nil {
		writeDomainError(w, err, "invalid transaction")
		return
	}

	tx, err := h.transactionUC.Add(r.Context(), input)
	if err != nil {
		writeDomainError(w, err, "failed to add transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}

// List returns the user's transactions inside the filter window, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	token := report.NormalizeToken(r.URL.Query().Get("filter"))
	if r.URL.Query().Get("filter") == "" {
		token = report.TokenAll
	}
	limit, offset := domain.ValidatePagination(parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))

	txs, err := h.transactionUC.List(r.Context(), user.ID, token)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	total := len(txs)
	start := min(offset, total)
	end := min(start+limit, total)

	writeJSON(w, http.StatusOK, dto.TransactionListResponse{
		Filter:       token,
		Transactions: dto.TransactionsFromDomain(txs[start:end]),
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

// ListForDay returns one day's income and expenses.
func (h *TransactionHandler) ListForDay(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	day := chi.URLParam(r, "date")
	if day == "" {
		writeError(w, http.StatusBadRequest, "missing date", "")
		return
	}

	result, err := h.transactionUC.ListForDay(r.Context(), user.ID, day)
	if err != nil {
		writeDomainError(w, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.DayTransactionsFromUseCase(result))
}
