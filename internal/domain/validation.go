package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
	ErrInvalidUsername = errors.New("invalid username")
	ErrAmountTooLarge  = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall  = errors.New("amount below minimum allowed")
)

// Validation constants
const (
	MaxCategoryLength    = 50
	MaxDescriptionLength = 500
	MaxUsernameLength    = 64
	MinUsernameLength    = 3
	MaxTransactionAmount = "1000000000000" // 1 trillion
	MinTransactionAmount = "0.01"
	MinPasswordLength    = 8
	MaxPasswordLength    = 128
)

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	upperRegex    = regexp.MustCompile(`[A-Z]`)
	lowerRegex    = regexp.MustCompile(`[a-z]`)
	digitRegex    = regexp.MustCompile(`[0-9]`)
)

// ValidateAmount validates a transaction amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount := decimal.RequireFromString(MinTransactionAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinTransactionAmount)
	}

	maxAmount := decimal.RequireFromString(MaxTransactionAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransactionAmount)
	}

	return nil
}

// ValidateCategoryName validates a category label
func ValidateCategoryName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrInvalidCategory)
	}

	if utf8.RuneCountInString(name) > MaxCategoryLength {
		return fmt.Errorf("%w: category exceeds %d characters", ErrInvalidCategory, MaxCategoryLength)
	}

	return nil
}

// ValidateDescription limits free-text descriptions
func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateUsername validates a display name
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: must be %d-%d characters", ErrInvalidUsername, MinUsernameLength, MaxUsernameLength)
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("%w: only letters, digits, '.', '_' and '-' are allowed", ErrInvalidUsername)
	}

	return nil
}

// ValidatePassword validates password strength
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) || !digitRegex.MatchString(password) {
		return fmt.Errorf("%w: must contain uppercase, lowercase, and numbers", ErrPasswordTooWeak)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 100

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
