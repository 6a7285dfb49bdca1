package models

// DriverRecord is one entry of the driver roster. Owned by the roster store.
type DriverRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
