package types

// ServiceName is used for the logger and metric labels
const ServiceName = "dashboard-gateway"

// Enum для статуса пользователя
type UserStatus string

const (
	ActiveStatus   UserStatus = "ACTIVE"
	InActiveStatus UserStatus = "INACTIVE"
	BannedStatus   UserStatus = "BANNED"
)

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	MerchantRole UserRole = "MERCHANT"
	DriverRole   UserRole = "DRIVER"
	AdminRole    UserRole = "ADMIN"
)

// Source names the external collaborator an aggregation step talks to
type Source string

const (
	SourceRoster       Source = "roster"
	SourceTransactions Source = "transactions"
)
