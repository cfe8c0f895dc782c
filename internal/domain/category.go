package domain

import (
	"strings"
	"time"
)

// Category is a user-defined transaction label.
type Category struct {
	CreatedAt time.Time
	ID        string
	UserID    string
	Name      string
}

// IsDefaultCategory reports whether name matches a built-in category.
func IsDefaultCategory(name string) bool {
	for _, c := range DefaultCategories {
		if strings.EqualFold(c, strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}
