package memory

import (
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestStatusCache(t *testing.T) {
	cache := NewStatusCache()

	_, ok, err := cache.LastStatus()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.SaveStatus(niriwindows.Status{Text: "o", Tooltip: "foot: vim"}))
	require.NoError(t, cache.SaveStatus(niriwindows.Status{Text: "o o", Tooltip: "foot: vim\nmpv: x"}))

	status, ok, err := cache.LastStatus()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, niriwindows.Status{Text: "o o", Tooltip: "foot: vim\nmpv: x"}, status)
}
