package model

import (
	"encoding/json"
	"time"
)

// RuleType distinguishes the two kinds of jurisdiction rules.
type RuleType string

// Rule type constants.
const (
	RuleTypeGovernmentFee  RuleType = "government_fee"
	RuleTypeTaxCalculation RuleType = "tax_calculation"
)

// JurisdictionRule is a single data-driven rule supplied by the rule store.
// Rules are read-only reference data; the engine never mutates them.
type JurisdictionRule struct {
	EffectiveDate time.Time `json:"effective_date,omitempty"`
	ID            string    `json:"id"`
	StateCode     string    `json:"state_code"`
	CountyName    string    `json:"county_name,omitempty"`
	RuleType      RuleType  `json:"rule_type"`
	Conditions    Condition `json:"conditions"`
	Payload       RulePayload
	Version       int `json:"version,omitempty"`
}

// RulePayload carries the rule-type-specific data. Government fee rules
// use the fee fields; tax calculation rules use the rate fields.
type RulePayload struct {
	Priority  *int     `json:"priority,omitempty"`
	TaxRate   *float64 `json:"tax_rate,omitempty"`
	CapAmount *float64 `json:"cap_amount,omitempty"`
	FeeCode   string   `json:"fee_code,omitempty"`
	Label     string   `json:"label,omitempty"`
	Amount    float64  `json:"amount,omitempty"`
	Taxable   bool     `json:"taxable,omitempty"`
}

// PriorityOrZero returns the rule's sort priority, treating a missing
// priority as 0.
func (r JurisdictionRule) PriorityOrZero() int {
	if r.Payload.Priority == nil {
		return 0
	}
	return *r.Payload.Priority
}

// Condition is one node of a rule's condition tree. Trees arrive from the
// rule store as nested JSON operator objects of unknown shape, e.g.
//
//	{"and": [{"==": [{"var": "scenario.isFinanced"}, true]},
//	         {">":  [{"var": "deal.sellingPrice"}, 5000]}]}
//
// An empty object is the unconditional rule. Unknown operators are kept
// as-is so the evaluator can fail closed on them.
type Condition struct {
	Lit     any         `json:"-"`
	Op      string      `json:"-"`
	VarPath string      `json:"-"`
	Args    []Condition `json:"-"`
	IsVar   bool        `json:"-"`
	IsLit   bool        `json:"-"`
}

// IsEmpty reports whether this is the empty (always-true) condition.
func (c Condition) IsEmpty() bool {
	return c.Op == "" && !c.IsVar && !c.IsLit
}

// UnmarshalJSON decodes a nested operator object into the tagged tree.
// Scalars become literal leaves; {"var": "path"} becomes a field
// reference; any other single-key object becomes an operator node.
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = conditionFromValue(raw)
	return nil
}

// MarshalJSON re-encodes the tree in its wire form so rules round-trip
// through storage unchanged.
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.toValue())
}

func conditionFromValue(raw any) Condition {
	switch v := raw.(type) {
	case map[string]any:
		if len(v) == 0 {
			return Condition{}
		}
		if len(v) == 1 {
			for op, operand := range v {
				if op == "var" {
					if path, ok := operand.(string); ok {
						return Condition{IsVar: true, VarPath: path}
					}
					return Condition{Op: "var"} // malformed var; fails closed
				}
				return Condition{Op: op, Args: operandList(operand)}
			}
		}
		// Multi-key objects have no defined meaning; keep an operator the
		// evaluator will not recognize so the rule never applies.
		return Condition{Op: "invalid"}
	default:
		return Condition{IsLit: true, Lit: raw}
	}
}

func operandList(operand any) []Condition {
	list, ok := operand.([]any)
	if !ok {
		// Single operand shorthand.
		return []Condition{conditionFromValue(operand)}
	}
	args := make([]Condition, len(list))
	for i, item := range list {
		args[i] = conditionFromValue(item)
	}
	return args
}

func (c Condition) toValue() any {
	switch {
	case c.IsVar:
		return map[string]any{"var": c.VarPath}
	case c.IsLit:
		return c.Lit
	case c.Op == "":
		return map[string]any{}
	default:
		args := make([]any, len(c.Args))
		for i, a := range c.Args {
			args[i] = a.toValue()
		}
		return map[string]any{c.Op: args}
	}
}
