package domain

// Company is the store profile maintained by the owner. Times are HH:MM:SS,
// empty when unset.
type Company struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name"`
	StoreLocate string `json:"store_locate"`
	OpenTime    string `json:"open_time"`
	CloseTime   string `json:"close_time"`
	TargetSales int64  `json:"target_sales"`
	LaborCost   int64  `json:"labor_cost"`
}

// CompanyProfile is a company together with its rest days (YYYY-MM-DD) and
// position names.
type CompanyProfile struct {
	Company   Company
	RestDays  []string
	Positions []string
}
