package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/iho/finlab/internal/domain"
)

// CategoryUseCase manages user-defined categories.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
	clock        Clock
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator, clock Clock) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, idGen: idGen, clock: clock}
}

// CategoryList is the set of categories a user can pick from.
type CategoryList struct {
	Defaults []string
	Custom   []domain.Category
}

// Names returns defaults followed by custom category names.
func (l CategoryList) Names() []string {
	names := make([]string, 0, len(l.Defaults)+len(l.Custom))
	names = append(names, l.Defaults...)
	for _, c := range l.Custom {
		names = append(names, c.Name)
	}
	return names
}

// List returns the default categories and the user's own.
func (uc *CategoryUseCase) List(ctx context.Context, userID string) (*CategoryList, error) {
	custom, err := uc.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	defaults := make([]string, len(domain.DefaultCategories))
	copy(defaults, domain.DefaultCategories)

	return &CategoryList{Defaults: defaults, Custom: custom}, nil
}

// Create adds a custom category. Names are unique per user ignoring case
// and may not shadow a default category.
func (uc *CategoryUseCase) Create(ctx context.Context, userID, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if err := domain.ValidateCategoryName(name); err != nil {
		return nil, err
	}

	if domain.IsDefaultCategory(name) {
		return nil, fmt.Errorf("%w: %q is a default category", domain.ErrCategoryExists, name)
	}

	existing, err := uc.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, fmt.Errorf("%w: %q", domain.ErrCategoryExists, name)
		}
	}

	category := &domain.Category{
		ID:        uc.idGen.Generate(),
		UserID:    userID,
		Name:      name,
		CreatedAt: uc.clock.Now().UTC(),
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
