package dto

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/SakerDakak/taxipay-dashboard/pkg/validator"
)

// TopDriversQuery is the query string of the top drivers endpoints.
type TopDriversQuery struct {
	Limit    int           `validate:"gte=0"`
	Interval time.Duration `validate:"gte=0"`
}

// TopDriversBounds are the defaults and limits applied to TopDriversQuery.
type TopDriversBounds struct {
	DefaultLimit    int
	MaxLimit        int
	DefaultInterval time.Duration
	MinInterval     time.Duration
}

// ParseTopDriversQuery reads limit and, when withInterval is set, interval from q.
// Missing values take the defaults from b.
func ParseTopDriversQuery(q url.Values, b TopDriversBounds, withInterval bool, v *validator.Validator) TopDriversQuery {
	req := TopDriversQuery{
		Limit:    b.DefaultLimit,
		Interval: b.DefaultInterval,
	}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			v.AddError("limit", "must be an integer")
		} else {
			req.Limit = n
		}
	}

	if withInterval {
		if raw := q.Get("interval"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				v.AddError("interval", "must be a duration such as 30s or 1m")
			} else {
				req.Interval = d
			}
		}
	}

	if !v.Valid() {
		return req
	}

	v.Struct(req)
	v.Check(b.MaxLimit <= 0 || req.Limit <= b.MaxLimit, "limit", fmt.Sprintf("must be less than or equal to %d", b.MaxLimit))
	if withInterval {
		v.Check(req.Interval >= b.MinInterval, "interval", fmt.Sprintf("must be at least %s", b.MinInterval))
	}

	return req
}
