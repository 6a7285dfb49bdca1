package models

import "time"

// DriverActivity is the derived, per-run ranking entry of one driver.
type DriverActivity struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	TransactionCount   int    `json:"transaction_count"`
	PercentageActivity int    `json:"percentage_activity"`
}

// ActivityReport summarizes one aggregation run.
type ActivityReport struct {
	GeneratedAt              time.Time        `json:"generated_at"`
	Limit                    int              `json:"limit"`
	RosterSize               int              `json:"roster_size"`
	TotalTransactions        int              `json:"total_transactions"`
	AttributableTransactions int              `json:"attributable_transactions"`
	PagesFetched             int              `json:"pages_fetched"`
	Drivers                  []DriverActivity `json:"drivers"`
}
