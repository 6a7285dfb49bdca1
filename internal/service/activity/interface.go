package activity

import (
	"context"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
)

// RosterSource returns the complete driver roster in one call.
type RosterSource interface {
	GetDrivers(ctx context.Context) ([]models.DriverRecord, error)
}

// TransactionSource returns one page of transactions. page is 1-based, limit > 0.
type TransactionSource interface {
	GetTransactions(ctx context.Context, page, limit int) (*models.TransactionPage, error)
}
