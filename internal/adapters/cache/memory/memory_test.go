package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibi/gateway-bridge/pkg/schema"
)

func TestCache_PutGet(t *testing.T) {
	c := New()
	at := time.Now()
	models := []schema.ModelDescriptor{schema.NewModelDescriptor("m1")}

	require.NoError(t, c.Put("k", models, at))

	got, fetchedAt, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, models, got)
	assert.Equal(t, at, fetchedAt)
}

func TestCache_GetReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Put("k", []schema.ModelDescriptor{schema.NewModelDescriptor("m1")}, time.Now()))

	got, _, _ := c.Get("k")
	got[0].ID = "mutated"

	fresh, _, _ := c.Get("k")
	assert.Equal(t, "m1", fresh[0].ID)
}

func TestCache_EntriesNeverExpireHere(t *testing.T) {
	// Staleness is the discovery service's decision; an ancient entry must
	// still be readable for the fallback ladder.
	c := New()
	require.NoError(t, c.Put("k", nil, time.Now().Add(-24*time.Hour)))

	_, _, ok := c.Get("k")
	assert.True(t, ok)
}

func TestCache_DeleteAndFlushIdempotent(t *testing.T) {
	c := New()

	assert.NoError(t, c.Delete("missing"))
	assert.NoError(t, c.Flush())

	require.NoError(t, c.Put("a", nil, time.Now()))
	require.NoError(t, c.Put("b", nil, time.Now()))

	assert.NoError(t, c.Delete("a"))
	_, _, ok := c.Get("a")
	assert.False(t, ok)

	assert.NoError(t, c.Flush())
	_, _, ok = c.Get("b")
	assert.False(t, ok)
}
