package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Veraticus/dealcalc/internal/model"
)

const ruleColumns = `id, state_code, county_name, rule_type, conditions,
	fee_code, label, amount, taxable, priority, tax_rate, cap_amount,
	version, effective_date`

// GetRulesForJurisdiction returns all rules for a state, including rules
// scoped to the given county. Rows come back in insertion order, which is
// the tie-break order for equal-priority rules.
func (s *SQLiteStorage) GetRulesForJurisdiction(ctx context.Context, stateCode, countyName string) ([]model.JurisdictionRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(stateCode, "stateCode"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+ruleColumns+`
		FROM jurisdiction_rules
		WHERE state_code = ? AND (county_name = '' OR county_name = ?)
		ORDER BY rowid`, stateCode, countyName)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRules(rows)
}

// ListRules returns all rules, optionally filtered by state.
func (s *SQLiteStorage) ListRules(ctx context.Context, stateCode string) ([]model.JurisdictionRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + ruleColumns + ` FROM jurisdiction_rules ORDER BY rowid`
	args := []any{}
	if stateCode != "" {
		query = `SELECT ` + ruleColumns + ` FROM jurisdiction_rules WHERE state_code = ? ORDER BY rowid`
		args = append(args, stateCode)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRules(rows)
}

// SaveRules inserts or replaces rules by id inside a single transaction.
func (s *SQLiteStorage) SaveRules(ctx context.Context, rules []model.JurisdictionRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRules(rules); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO jurisdiction_rules
		(`+ruleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rule := range rules {
		conditions, err := json.Marshal(rule.Conditions)
		if err != nil {
			return fmt.Errorf("failed to encode conditions for rule %s: %w", rule.ID, err)
		}

		var effectiveDate any
		if !rule.EffectiveDate.IsZero() {
			effectiveDate = rule.EffectiveDate
		}

		if _, err := stmt.ExecContext(ctx,
			rule.ID, rule.StateCode, rule.CountyName, string(rule.RuleType), string(conditions),
			nullString(rule.Payload.FeeCode), nullString(rule.Payload.Label),
			rule.Payload.Amount, rule.Payload.Taxable,
			rule.Payload.Priority, rule.Payload.TaxRate, rule.Payload.CapAmount,
			rule.Version, effectiveDate); err != nil {
			return fmt.Errorf("failed to save rule %s: %w", rule.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rules: %w", err)
	}
	return nil
}

func scanRules(rows *sql.Rows) ([]model.JurisdictionRule, error) {
	var rules []model.JurisdictionRule

	for rows.Next() {
		var (
			rule          model.JurisdictionRule
			ruleType      string
			conditions    string
			feeCode       sql.NullString
			label         sql.NullString
			priority      sql.NullInt64
			taxRate       sql.NullFloat64
			capAmount     sql.NullFloat64
			effectiveDate sql.NullTime
		)

		if err := rows.Scan(&rule.ID, &rule.StateCode, &rule.CountyName, &ruleType, &conditions,
			&feeCode, &label, &rule.Payload.Amount, &rule.Payload.Taxable,
			&priority, &taxRate, &capAmount,
			&rule.Version, &effectiveDate); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}

		rule.RuleType = model.RuleType(ruleType)
		if err := json.Unmarshal([]byte(conditions), &rule.Conditions); err != nil {
			return nil, fmt.Errorf("failed to decode conditions for rule %s: %w", rule.ID, err)
		}
		rule.Payload.FeeCode = feeCode.String
		rule.Payload.Label = label.String
		if priority.Valid {
			p := int(priority.Int64)
			rule.Payload.Priority = &p
		}
		if taxRate.Valid {
			r := taxRate.Float64
			rule.Payload.TaxRate = &r
		}
		if capAmount.Valid {
			c := capAmount.Float64
			rule.Payload.CapAmount = &c
		}
		if effectiveDate.Valid {
			rule.EffectiveDate = effectiveDate.Time.UTC()
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rules: %w", err)
	}
	return rules, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
