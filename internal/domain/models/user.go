package models

import (
	"context"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/internal/domain/types"
)

type User struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      types.UserRole   `json:"role"`
	Status    types.UserStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at,omitzero"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == types.AdminRole
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == types.ActiveStatus
}

type userCtxKey struct{}

// WithUser stores the authorized user in the context
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the authorized user or nil
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}
