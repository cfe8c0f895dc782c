package handler

import (
	"context"
	"net/http"

	"github.com/iho/finlab/internal/adapter/http/dto"
	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	List(ctx context.Context, userID string) (*usecase.CategoryList, error)
	Create(ctx context.Context, userID, name string) (*domain.Category, error)
}

// CategoryHandler handles category requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// List returns the default categories followed by the user's own.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	list, err := h.categoryUC.List(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err, "failed to list categories")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryListFromUseCase(list))
}

// Create adds a custom category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.Create(r.Context(), user.ID, req.Name)
	if err != nil {
		writeDomainError(w, err, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}
