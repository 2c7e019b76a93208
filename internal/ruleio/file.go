// Package ruleio loads jurisdiction rules and dealer configs from YAML
// files for bulk import into the stores.
package ruleio

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/dealcalc/internal/common"
	"github.com/Veraticus/dealcalc/internal/model"
)

// File is the decoded contents of a rule file.
type File struct {
	Rules         []model.JurisdictionRule
	DealerConfigs []model.DealerConfig
}

type fileDoc struct {
	Rules         []ruleDoc         `yaml:"rules"`
	DealerConfigs []dealerConfigDoc `yaml:"dealer_configs"`
}

type ruleDoc struct {
	ID            string         `yaml:"id"`
	State         string         `yaml:"state"`
	County        string         `yaml:"county"`
	Type          string         `yaml:"type"`
	Conditions    map[string]any `yaml:"conditions"`
	FeeCode       string         `yaml:"fee_code"`
	Label         string         `yaml:"label"`
	Amount        float64        `yaml:"amount"`
	Taxable       bool           `yaml:"taxable"`
	Priority      *int           `yaml:"priority"`
	TaxRate       *float64       `yaml:"tax_rate"`
	CapAmount     *float64       `yaml:"cap_amount"`
	Version       int            `yaml:"version"`
	EffectiveDate string         `yaml:"effective_date"`
}

type dealerConfigDoc struct {
	DealerID       string          `yaml:"dealer_id"`
	DefaultPackage string          `yaml:"default_package"`
	Packages       []feePackageDoc `yaml:"packages"`
}

type feePackageDoc struct {
	ID   string            `yaml:"id"`
	Name string            `yaml:"name"`
	Fees []model.DealerFee `yaml:"fees"`
}

// Load reads and validates a rule file. Rules without an id are assigned
// a generated one so re-imports of the same file replace rather than
// duplicate hand-identified rules.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidRuleFile, err)
	}

	file := &File{}
	for i, rd := range doc.Rules {
		rule, err := rd.toRule()
		if err != nil {
			return nil, fmt.Errorf("%w: rule %d: %v", common.ErrInvalidRuleFile, i, err)
		}
		file.Rules = append(file.Rules, rule)
	}
	for i, dc := range doc.DealerConfigs {
		config, err := dc.toConfig()
		if err != nil {
			return nil, fmt.Errorf("%w: dealer config %d: %v", common.ErrInvalidRuleFile, i, err)
		}
		file.DealerConfigs = append(file.DealerConfigs, config)
	}
	return file, nil
}

func (rd ruleDoc) toRule() (model.JurisdictionRule, error) {
	if rd.State == "" {
		return model.JurisdictionRule{}, fmt.Errorf("missing state")
	}

	rule := model.JurisdictionRule{
		ID:         rd.ID,
		StateCode:  rd.State,
		CountyName: rd.County,
		RuleType:   model.RuleType(rd.Type),
		Version:    rd.Version,
		Payload: model.RulePayload{
			FeeCode:   rd.FeeCode,
			Label:     rd.Label,
			Amount:    rd.Amount,
			Taxable:   rd.Taxable,
			Priority:  rd.Priority,
			TaxRate:   rd.TaxRate,
			CapAmount: rd.CapAmount,
		},
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.Version == 0 {
		rule.Version = 1
	}

	if rd.EffectiveDate != "" {
		date, err := time.Parse("2006-01-02", rd.EffectiveDate)
		if err != nil {
			return model.JurisdictionRule{}, fmt.Errorf("bad effective_date %q: %w", rd.EffectiveDate, err)
		}
		rule.EffectiveDate = date
	}

	// Conditions are authored as free-form YAML; round-trip through JSON
	// into the typed tree the evaluator understands.
	if len(rd.Conditions) > 0 {
		raw, err := json.Marshal(rd.Conditions)
		if err != nil {
			return model.JurisdictionRule{}, fmt.Errorf("bad conditions: %w", err)
		}
		if err := json.Unmarshal(raw, &rule.Conditions); err != nil {
			return model.JurisdictionRule{}, fmt.Errorf("bad conditions: %w", err)
		}
	}

	return rule, nil
}

func (dc dealerConfigDoc) toConfig() (model.DealerConfig, error) {
	if dc.DealerID == "" {
		return model.DealerConfig{}, fmt.Errorf("missing dealer_id")
	}

	config := model.DealerConfig{
		DealerID: dc.DealerID,
		ConfigData: model.DealerConfigData{
			DefaultPackageID: dc.DefaultPackage,
			Packages:         make(map[string]model.FeePackage, len(dc.Packages)),
		},
	}
	for _, pkg := range dc.Packages {
		if pkg.ID == "" {
			return model.DealerConfig{}, fmt.Errorf("package missing id")
		}
		config.ConfigData.Packages[pkg.ID] = model.FeePackage{
			ID:   pkg.ID,
			Name: pkg.Name,
			Fees: pkg.Fees,
		}
	}
	return config, nil
}
