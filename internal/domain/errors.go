package domain

import "errors"

var (
	// Transaction errors
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrInvalidTransactionType = errors.New("transaction type must be Income or Expense")
	ErrInvalidCategory        = errors.New("invalid category")
	ErrDuplicateTransaction   = errors.New("duplicate transaction detected")
	ErrInvalidDate            = errors.New("invalid date, expected YYYY-MM-DD")

	// Category errors
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryNotFound = errors.New("category not found")

	// User errors
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user with this email already exists")

	// Onboarding errors
	ErrOnboardingNotFound = errors.New("onboarding profile not found")
	ErrInvalidOnboarding  = errors.New("invalid onboarding answers")

	// Assistant errors
	ErrEmptyMessage         = errors.New("message cannot be empty")
	ErrAssistantUnavailable = errors.New("assistant is unavailable")
)
