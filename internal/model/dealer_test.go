package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *DealerConfig {
	return &DealerConfig{
		DealerID: "dealer-1",
		ConfigData: DealerConfigData{
			DefaultPackageID: "standard",
			Packages: map[string]FeePackage{
				"standard": {ID: "standard", Fees: []DealerFee{{Code: "DOC", Amount: 799}}},
				"minimal":  {ID: "minimal", Fees: []DealerFee{{Code: "DOC", Amount: 499}}},
			},
		},
	}
}

func TestResolvePackage(t *testing.T) {
	t.Run("explicit package id", func(t *testing.T) {
		pkg, ok := testConfig().ResolvePackage("minimal")
		require.True(t, ok)
		assert.Equal(t, "minimal", pkg.ID)
	})

	t.Run("unknown id falls back to default", func(t *testing.T) {
		pkg, ok := testConfig().ResolvePackage("missing")
		require.True(t, ok)
		assert.Equal(t, "standard", pkg.ID)
	})

	t.Run("empty id uses default", func(t *testing.T) {
		pkg, ok := testConfig().ResolvePackage("")
		require.True(t, ok)
		assert.Equal(t, "standard", pkg.ID)
	})

	t.Run("nil config resolves nothing", func(t *testing.T) {
		var config *DealerConfig
		_, ok := config.ResolvePackage("standard")
		assert.False(t, ok)
	})

	t.Run("no packages resolves nothing", func(t *testing.T) {
		config := &DealerConfig{DealerID: "dealer-1"}
		_, ok := config.ResolvePackage("standard")
		assert.False(t, ok)
	})

	t.Run("unresolvable default resolves nothing", func(t *testing.T) {
		config := testConfig()
		config.ConfigData.DefaultPackageID = "gone"
		_, ok := config.ResolvePackage("missing")
		assert.False(t, ok)
	})
}

func TestTradeInEquity(t *testing.T) {
	assert.InDelta(t, 7000, TradeIn{EstimatedValue: 10000, PayoffAmount: 3000}.Equity(), 1e-9)
	assert.InDelta(t, 0, TradeIn{EstimatedValue: 5000, PayoffAmount: 8000}.Equity(), 1e-9)
	assert.InDelta(t, 0, TradeIn{}.Equity(), 1e-9)
	assert.InDelta(t, 2000, TradeIn{EstimatedValue: 2000}.Equity(), 1e-9)
}
