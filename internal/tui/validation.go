package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/quantmind-br/extbundle/internal/config"
)

// Validation error messages
var (
	ErrRequired      = errors.New("this field is required")
	ErrInvalidNumber = errors.New("must be a valid number")
	ErrNegative      = errors.New("must not be negative")
)

// ValidateRequired ensures a string value is not empty
func ValidateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrRequired
	}
	return nil
}

// ValidateNonNegativeInt accepts empty input or an integer >= 0
func ValidateNonNegativeInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return ErrInvalidNumber
	}
	if n < 0 {
		return ErrNegative
	}
	return nil
}

// ValidateSize accepts empty input or a size such as 512MB
func ValidateSize(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := config.ParseSize(s); err != nil {
		return fmt.Errorf("invalid size (use: 100KB, 512MB, 1GB): %w", err)
	}
	return nil
}

// ValidateShims checks every non-blank line is a module=package pair
func ValidateShims(s string) error {
	_, err := parseShims(s)
	return err
}

// ValidateModuleList rejects module names containing whitespace
func ValidateModuleList(s string) error {
	for _, name := range parseLines(s) {
		if strings.ContainsAny(name, " \t") {
			return fmt.Errorf("invalid module name %q", name)
		}
	}
	return nil
}

// ValidateLogLevel validates log level values
func ValidateLogLevel(s string) error {
	switch strings.ToLower(s) {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("invalid log level: must be one of debug, info, warn, error")
}

// ValidateLogFormat validates log format values
func ValidateLogFormat(s string) error {
	switch strings.ToLower(s) {
	case "json", "pretty":
		return nil
	}
	return fmt.Errorf("invalid log format: must be json or pretty")
}
