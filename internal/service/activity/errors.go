package activity

import (
	"fmt"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
)

// ServiceError is a failure of the roster or transaction source.
// It aborts the whole aggregation run.
type ServiceError struct {
	Source types.Source
	Page   int // transaction page being fetched, 0 for the roster
	Err    error
}

func (e *ServiceError) Error() string {
	if e.Source == types.SourceTransactions {
		return fmt.Sprintf("failed to fetch transactions page %d: %v", e.Page, e.Err)
	}
	return fmt.Sprintf("failed to fetch driver roster: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
