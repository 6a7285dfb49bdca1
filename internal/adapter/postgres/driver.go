package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
)

type DriverRepo struct {
	db Querier
}

func NewDriverRepo(db Querier) *DriverRepo {
	return &DriverRepo{
		db: db,
	}
}

// GetDrivers returns the whole driver roster in registration order.
func (r *DriverRepo) GetDrivers(ctx context.Context) (_ []models.DriverRecord, err error) {
	const op = "DriverRepo.GetDrivers"
	ctx = wrap.WithAction(ctx, types.ActionFetchRoster)

	start := time.Now()
	defer func() {
		metrics.RecordDatabaseQuery("get_drivers", err, time.Since(start))
	}()

	query := `
		SELECT d.id, COALESCE(NULLIF(d.name, ''), u.name, '')
		FROM drivers d
		LEFT JOIN users u ON u.id = d.id
		ORDER BY d.created_at, d.id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseQueryFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	drivers := make([]models.DriverRecord, 0)
	for rows.Next() {
		var d models.DriverRecord
		if err := rows.Scan(&d.ID, &d.Name); err != nil {
			ctx = wrap.WithAction(ctx, types.ActionDatabaseQueryFailed)
			return nil, wrap.Error(ctx, fmt.Errorf("%s: scan: %w", op, err))
		}
		drivers = append(drivers, d)
	}
	if err := rows.Err(); err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseQueryFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return drivers, nil
}
