package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/infrastructure/postgres/generated"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	queries *generated.Queries
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return newCategoryRepository(pool)
}

func newCategoryRepository(db generated.DBTX) *CategoryRepository {
	return &CategoryRepository{queries: generated.New(db)}
}

// Create inserts a category. The unique index on (user_id, lower(name))
// surfaces as domain.ErrCategoryExists.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	err := r.queries.CreateCategory(ctx, generated.CreateCategoryParams{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		CreatedAt: timeToPgTimestamptz(category.CreatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrCategoryExists
	}

	return err
}

// ListByUser returns the user's categories in creation order.
func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := r.queries.ListCategoriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, domain.Category{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt.Time,
		})
	}

	return categories, nil
}
