package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibi/gateway-bridge/internal/core/services"
	"github.com/okibi/gateway-bridge/pkg/schema"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")

	in := []schema.ModelDescriptor{
		schema.NewModelDescriptor("m1"),
		{ID: "m2", Name: "Model Two", ContextWindow: 32768, MaxOutput: 8192, Streaming: true},
	}
	require.NoError(t, services.SaveSnapshot(path, in))

	out, err := services.LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadSnapshot_DropsEntriesWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")

	require.NoError(t, services.SaveSnapshot(path, []schema.ModelDescriptor{
		{ID: "m1"},
		{Name: "orphan"},
	}))

	out, err := services.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "m1", out[0].ID)
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := services.LoadSnapshot(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
