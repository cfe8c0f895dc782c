package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"

	"github.com/iho/finlab/internal/domain"
	"github.com/iho/finlab/internal/report"
)

var (
	userColumns        = []string{"id", "username", "email", "hashed_password", "role", "active", "created_at", "updated_at"}
	transactionColumns = []string{"id", "user_id", "type", "category", "description", "amount", "occurred_at", "created_at"}
)

func ts(t time.Time) pgtype.Timestamptz { return timeToPgTimestamptz(t) }

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := newUserRepository(mock)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "asha", "asha@example.com", "hash", "user", true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := repo.Create(context.Background(), &domain.User{
		ID: "u1", Username: "asha", Email: "asha@example.com", HashedPassword: "hash",
		Role: domain.RoleUser, Active: true,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := newUserRepository(mock)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery("FROM users WHERE email").
		WithArgs("asha@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).
			AddRow("u1", "asha", "asha@example.com", "hash", "user", true, ts(created), ts(created)))

	user, err := repo.GetByEmail(context.Background(), "asha@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Username != "asha" || user.Role != domain.RoleUser || !user.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user %+v", user)
	}

	mock.ExpectQuery("FROM users WHERE id").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestTransactionRepositoryCreateInTx(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

	txn := &domain.Transaction{
		ID: "t1", UserID: "u1", Type: domain.TransactionTypeExpense, Category: "Food",
		Description: "lunch", Amount: decimal.RequireFromString("250.00"), OccurredAt: now, CreatedAt: now,
	}

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectQuery("SELECT id FROM users WHERE id = \\$1 FOR UPDATE").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("u1"))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "Expense", "Food", pgxmock.AnyArg(), ts(now.Add(-domain.DuplicateWindow))).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO transactions").
		WithArgs("t1", "u1", "Expense", "Food", "lunch", pgxmock.AnyArg(), ts(now), ts(now)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tx, err := newTxManagerWithPool(mock, 0).Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := repo.LockUser(ctx, tx, "u1"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	dup, err := repo.HasDuplicateSince(ctx, tx, txn, now.Add(-domain.DuplicateWindow))
	if err != nil || dup {
		t.Fatalf("expected no duplicate, got dup=%v err=%v", dup, err)
	}
	if err := repo.Create(ctx, tx, txn); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	assertExpectations(t, mock)
}

func TestTransactionRepositoryLockUnknownUser(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	ctx := context.Background()

	mock.ExpectBeginTx(readCommitted)
	mock.ExpectQuery("FOR UPDATE").WithArgs("ghost").WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	tx, err := newTxManagerWithPool(mock, 0).Begin(ctx)
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if err := repo.LockUser(ctx, tx, "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	_ = tx.Rollback(ctx)
	assertExpectations(t, mock)
}

func TestTransactionRepositoryListByUser(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	day := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows(transactionColumns).
		AddRow("t2", "u1", "Income", "Salary", "June", decimalToNumeric(decimal.NewFromInt(50000)), ts(day), ts(day)).
		AddRow("t1", "u1", "Expense", "", "No description", pgtype.Numeric{}, ts(day.Add(-time.Hour)), ts(day))

	mock.ExpectQuery("WHERE user_id = \\$1\\s+ORDER BY").
		WithArgs("u1").
		WillReturnRows(rows)

	txs, err := repo.ListByUser(context.Background(), "u1", report.Range{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if !txs[0].Amount.Equal(decimal.NewFromInt(50000)) || txs[0].Type != domain.TransactionTypeIncome {
		t.Fatalf("unexpected first transaction %+v", txs[0])
	}
	if !txs[1].Amount.IsZero() {
		t.Fatalf("NULL amount should read as zero, got %s", txs[1].Amount)
	}
	assertExpectations(t, mock)
}

func TestTransactionRepositoryListByUserBounded(t *testing.T) {
	mock := newMockPool(t)
	repo := newTransactionRepository(mock)
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	rng := report.Resolve(report.Token7Days, now)

	mock.ExpectQuery("occurred_at >= \\$2 AND occurred_at <= \\$3").
		WithArgs("u1", ts(rng.Start), ts(rng.End)).
		WillReturnRows(pgxmock.NewRows(transactionColumns))

	txs, err := repo.ListByUser(context.Background(), "u1", rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Fatalf("expected no transactions, got %d", len(txs))
	}
	assertExpectations(t, mock)
}

func TestCategoryRepository(t *testing.T) {
	mock := newMockPool(t)
	repo := newCategoryRepository(mock)
	ctx := context.Background()
	created := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO categories").
		WithArgs("c1", "u1", "Rent", ts(created)).
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation})

	err := repo.Create(ctx, &domain.Category{ID: "c1", UserID: "u1", Name: "Rent", CreatedAt: created})
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}

	mock.ExpectQuery("FROM categories WHERE user_id").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "created_at"}).
			AddRow("c1", "u1", "Rent", ts(created)).
			AddRow("c2", "u1", "Gym", ts(created.Add(time.Hour))))

	cats, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Rent" || cats[1].Name != "Gym" {
		t.Fatalf("unexpected categories %+v", cats)
	}
	assertExpectations(t, mock)
}

func TestOnboardingRepository(t *testing.T) {
	mock := newMockPool(t)
	repo := newOnboardingRepository(mock)
	ctx := context.Background()
	updated := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	profile := &domain.OnboardingProfile{
		UserID:          "u1",
		UpdatedAt:       updated,
		Interests:       []string{"saving"},
		AppUsage:        "track spending",
		FinancialGoals:  "emergency fund",
		AchievementPlan: "save monthly",
		Timeframe:       6,
		TimeframeUnit:   domain.TimeframeMonths,
	}

	mock.ExpectExec("INSERT INTO onboarding_profiles").
		WithArgs("u1", pgxmock.AnyArg(), ts(updated)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Upsert(ctx, profile); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	doc := []byte(`{"interests":["saving"],"appUsage":"track spending","financialGoals":"emergency fund","achievementPlan":"save monthly","timeframeUnit":"months","timeframe":6}`)
	mock.ExpectQuery("FROM onboarding_profiles").
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "profile", "updated_at"}).AddRow("u1", doc, ts(updated)))

	got, err := repo.GetByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.UserID != "u1" || got.Timeframe != 6 || got.TimeframeUnit != domain.TimeframeMonths || got.Interests[0] != "saving" {
		t.Fatalf("unexpected profile %+v", got)
	}

	mock.ExpectQuery("FROM onboarding_profiles").WithArgs("u2").WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByUser(ctx, "u2"); !errors.Is(err, domain.ErrOnboardingNotFound) {
		t.Fatalf("expected ErrOnboardingNotFound, got %v", err)
	}
	assertExpectations(t, mock)
}
