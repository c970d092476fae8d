package domain

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrHabitExists      = errors.New("habit already exists")
	ErrHabitNotFound    = errors.New("habit not found")
)

const (
	MaxHabitNameLen = 100
)

// NormalizeHabitName trims surrounding whitespace and validates the result.
// Names stay case-sensitive.
func NormalizeHabitName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(trimmed) > MaxHabitNameLen {
		return "", ErrHabitNameTooLong
	}
	return trimmed, nil
}

const (
	WarningHabitExists    = "habit_exists"
	WarningHabitNotFound  = "habit_not_found"
	WarningDataCorruption = "data_corruption"
)

// Warning is a user-facing notice that did not alter ledger state.
type Warning struct {
	Code    string `json:"code"`
	Habit   string `json:"habit"`
	Message string `json:"message"`
}

func NewWarning(code, habit, message string) Warning {
	return Warning{Code: code, Habit: habit, Message: message}
}
