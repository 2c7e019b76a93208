package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/dealcalc/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidRule  = errors.New("invalid jurisdiction rule")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRules validates a slice of jurisdiction rules before saving.
func validateRules(rules []model.JurisdictionRule) error {
	if rules == nil {
		return fmt.Errorf("%w: rules", ErrNilParameter)
	}
	for i, rule := range rules {
		if err := validateRule(&rule); err != nil {
			return fmt.Errorf("rule at index %d: %w", i, err)
		}
	}
	return nil
}

// validateRule validates a single jurisdiction rule.
func validateRule(rule *model.JurisdictionRule) error {
	if rule.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRule)
	}
	if rule.StateCode == "" {
		return fmt.Errorf("%w: missing state code", ErrInvalidRule)
	}
	switch rule.RuleType {
	case model.RuleTypeGovernmentFee, model.RuleTypeTaxCalculation:
	default:
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, rule.RuleType)
	}
	if rule.RuleType == model.RuleTypeTaxCalculation && rule.Payload.TaxRate == nil {
		return fmt.Errorf("%w: tax rule missing rate", ErrInvalidRule)
	}
	return nil
}
