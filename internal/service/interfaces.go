// Package service defines the contracts between the engine and its data
// providers.
package service

import (
	"context"

	"github.com/Veraticus/dealcalc/internal/model"
)

// RuleStore supplies jurisdiction rules. It may return an empty slice;
// the engine falls back to jurisdiction defaults rather than failing.
type RuleStore interface {
	// GetRulesForJurisdiction returns all rules scoped to a state,
	// including county-scoped rules for the given county.
	GetRulesForJurisdiction(ctx context.Context, stateCode, countyName string) ([]model.JurisdictionRule, error)
	// ListRules returns all rules, optionally filtered by state.
	ListRules(ctx context.Context, stateCode string) ([]model.JurisdictionRule, error)
	// SaveRules inserts or replaces rules by id.
	SaveRules(ctx context.Context, rules []model.JurisdictionRule) error
}

// DealerConfigStore supplies one DealerConfig per dealer.
type DealerConfigStore interface {
	// GetDealerConfig returns the config for a dealer, or
	// common.ErrNotFound when the dealer has none.
	GetDealerConfig(ctx context.Context, dealerID string) (*model.DealerConfig, error)
	// SaveDealerConfig inserts or replaces a dealer's config.
	SaveDealerConfig(ctx context.Context, config *model.DealerConfig) error
}

// RateCache supplies lender rate sets keyed by provider.
type RateCache interface {
	// GetRateSet returns the cached rate set for a provider, or
	// common.ErrNotFound when none is cached.
	GetRateSet(ctx context.Context, providerID string) (*model.RateSet, error)
	// PutRateSet stores a provider's rate set.
	PutRateSet(ctx context.Context, set *model.RateSet) error
}
