package domain

import (
	"fmt"
	"strings"
	"time"
)

// TimeframeUnit is the unit of an onboarding goal timeframe.
type TimeframeUnit string

const (
	TimeframeDays   TimeframeUnit = "days"
	TimeframeWeeks  TimeframeUnit = "weeks"
	TimeframeMonths TimeframeUnit = "months"
	TimeframeYears  TimeframeUnit = "years"
)

func (u TimeframeUnit) IsValid() bool {
	switch u {
	case TimeframeDays, TimeframeWeeks, TimeframeMonths, TimeframeYears:
		return true
	}
	return false
}

// OnboardingProfile holds the answers to the first-run questionnaire.
type OnboardingProfile struct {
	UpdatedAt       time.Time     `json:"-"`
	UserID          string        `json:"-"`
	Interests       []string      `json:"interests"`
	AppUsage        string        `json:"appUsage"`
	FinancialGoals  string        `json:"financialGoals"`
	AchievementPlan string        `json:"achievementPlan"`
	TimeframeUnit   TimeframeUnit `json:"timeframeUnit"`
	Timeframe       int           `json:"timeframe"`
}

// Validate requires every question to be answered.
func (p *OnboardingProfile) Validate() error {
	if len(p.Interests) == 0 {
		return fmt.Errorf("%w: at least one interest is required", ErrInvalidOnboarding)
	}
	for _, field := range []struct{ name, value string }{
		{"appUsage", p.AppUsage},
		{"financialGoals", p.FinancialGoals},
		{"achievementPlan", p.AchievementPlan},
	} {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidOnboarding, field.name)
		}
	}
	if p.Timeframe <= 0 {
		return fmt.Errorf("%w: timeframe must be positive", ErrInvalidOnboarding)
	}
	if !p.TimeframeUnit.IsValid() {
		return fmt.Errorf("%w: unknown timeframe unit %q", ErrInvalidOnboarding, p.TimeframeUnit)
	}
	return nil
}

// GoalSummary renders the goal answers as a single line.
func (p *OnboardingProfile) GoalSummary() string {
	return fmt.Sprintf("%s (plan: %s, within %d %s)", p.FinancialGoals, p.AchievementPlan, p.Timeframe, p.TimeframeUnit)
}
