package accounts

// Balance in the smallest currency unit.
type Balance struct {
	Balance          int64 `json:"balance"`
	DeductionBalance int64 `json:"deductionBalance"`
	Available        int64 `json:"available"`
}

type RegionBalance struct {
	Region string `json:"region"`
	Balance
}

// Balances is the response of GET /api/account/balance
type Balances struct {
	// balance in the local region.
	Local Balance `json:"local"`

	// balances in all regions. Only when "allRegions=true" is queried.
	Regions []RegionBalance `json:"regions,omitempty"`
}
