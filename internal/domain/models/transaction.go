package models

// UserRef points at the driver a transaction is attributed to
type UserRef struct {
	ID string `json:"id"`
}

// TransactionRecord as reported by the payment terminal API.
// User is nil when the transaction is not attributable to a driver.
type TransactionRecord struct {
	ID   string   `json:"id"`
	User *UserRef `json:"user,omitempty"`
}

// DriverID returns the attributed driver id, or "" for unattributed transactions.
func (t TransactionRecord) DriverID() string {
	if t.User == nil {
		return ""
	}
	return t.User.ID
}

// PageInfo is the pagination metadata of a transaction page. Pages are 1-based.
type PageInfo struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// TransactionPage is one bounded slice of the transaction set.
// Pages is nil when the source omitted pagination metadata.
type TransactionPage struct {
	Transactions []TransactionRecord `json:"transactions"`
	Pages        *PageInfo           `json:"pages,omitempty"`
}
