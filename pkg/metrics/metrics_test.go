package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "success", status(nil))
	assert.Equal(t, "error", status(errors.New("boom")))
	assert.Equal(t, "cancelled", status(context.Canceled))
	assert.Equal(t, "cancelled", status(fmt.Errorf("fetch page 2: %w", context.Canceled)))
}
