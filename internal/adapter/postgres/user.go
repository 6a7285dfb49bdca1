package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/models"
	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
	wrap "github.com/SakerDakak/taxipay-dashboard/pkg/logger/wrapper"
	"github.com/SakerDakak/taxipay-dashboard/pkg/metrics"
	"github.com/SakerDakak/taxipay-dashboard/pkg/postgres"
	"github.com/jackc/pgx/v5"
)

type UserRepo struct {
	db Querier
}

func NewUserRepo(db Querier) *UserRepo {
	return &UserRepo{
		db: db,
	}
}

// GetUserByID fetches a user by primary key. Unknown or malformed ids give types.ErrUserNotFound.
func (r *UserRepo) GetUserByID(ctx context.Context, id string) (_ *models.User, err error) {
	const op = "UserRepo.GetUserByID"

	start := time.Now()
	defer func() {
		if errors.Is(err, types.ErrUserNotFound) {
			metrics.RecordDatabaseQuery("get_user_by_id", nil, time.Since(start))
			return
		}
		metrics.RecordDatabaseQuery("get_user_by_id", err, time.Since(start))
	}()

	if id == "" {
		return nil, types.ErrUserNotFound
	}

	const q = `
		SELECT id, COALESCE(name, ''), email, role, status, created_at, updated_at
		FROM users
		WHERE id = $1`

	var u models.User
	err = r.db.QueryRow(ctx, q, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || postgres.IsInvalidTextRepresentation(err) {
			return nil, types.ErrUserNotFound
		}
		ctx = wrap.WithAction(ctx, types.ActionDatabaseQueryFailed)
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return &u, nil
}
