package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedis_UnavailableBypasses(t *testing.T) {
	var r *Redis
	ctx := context.Background()

	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)

	var out map[string]string
	ok, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, r.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, r.Delete(ctx, "k"))
	assert.NoError(t, r.Close())

	empty := &Redis{}
	assert.False(t, empty.Available())
}
