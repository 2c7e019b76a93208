package model

// DealerConfig is a dealer's fee configuration as supplied by the dealer
// config store.
type DealerConfig struct {
	DealerID   string           `json:"dealer_id"`
	ConfigData DealerConfigData `json:"config_data"`
}

// DealerConfigData holds the named fee packages for one dealer.
type DealerConfigData struct {
	Packages         map[string]FeePackage `json:"packages"`
	DefaultPackageID string                `json:"default_package_id"`
}

// FeePackage is a named list of dealer-charged fees.
type FeePackage struct {
	ID   string      `json:"id"`
	Name string      `json:"name,omitempty"`
	Fees []DealerFee `json:"fees"`
}

// DealerFee is one configured dealer charge within a package.
type DealerFee struct {
	Code        string  `json:"code"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Taxable     bool    `json:"taxable"`
	Required    bool    `json:"required"`
}

// ResolvePackage selects the fee package for a deal: the requested id if
// present, otherwise the dealer's default package. A nil config or an
// unresolvable id yields no package, which the engine treats as "no
// dealer fees" rather than an error.
func (c *DealerConfig) ResolvePackage(packageID string) (FeePackage, bool) {
	if c == nil || len(c.ConfigData.Packages) == 0 {
		return FeePackage{}, false
	}
	if packageID != "" {
		if pkg, ok := c.ConfigData.Packages[packageID]; ok {
			return pkg, true
		}
	}
	if pkg, ok := c.ConfigData.Packages[c.ConfigData.DefaultPackageID]; ok {
		return pkg, true
	}
	return FeePackage{}, false
}
