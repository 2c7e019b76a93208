package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Veraticus/dealcalc/internal/common"
	"github.com/Veraticus/dealcalc/internal/model"
)

// GetDealerConfig returns the config for a dealer, or common.ErrNotFound
// when the dealer has none.
func (s *SQLiteStorage) GetDealerConfig(ctx context.Context, dealerID string) (*model.DealerConfig, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(dealerID, "dealerID"); err != nil {
		return nil, err
	}

	var configData string
	err := s.db.QueryRowContext(ctx,
		`SELECT config_data FROM dealer_configs WHERE dealer_id = ?`, dealerID).Scan(&configData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: dealer config %s", common.ErrNotFound, dealerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query dealer config: %w", err)
	}

	config := &model.DealerConfig{DealerID: dealerID}
	if err := json.Unmarshal([]byte(configData), &config.ConfigData); err != nil {
		return nil, fmt.Errorf("failed to decode dealer config %s: %w", dealerID, err)
	}
	return config, nil
}

// SaveDealerConfig inserts or replaces a dealer's config.
func (s *SQLiteStorage) SaveDealerConfig(ctx context.Context, config *model.DealerConfig) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if config == nil {
		return fmt.Errorf("%w: config", ErrNilParameter)
	}
	if err := validateString(config.DealerID, "config.DealerID"); err != nil {
		return err
	}

	configData, err := json.Marshal(config.ConfigData)
	if err != nil {
		return fmt.Errorf("failed to encode dealer config: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO dealer_configs (dealer_id, config_data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(dealer_id) DO UPDATE SET
			config_data = excluded.config_data,
			updated_at = CURRENT_TIMESTAMP`,
		config.DealerID, string(configData)); err != nil {
		return fmt.Errorf("failed to save dealer config: %w", err)
	}
	return nil
}
