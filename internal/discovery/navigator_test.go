package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quadrago-discovery/internal/discovery"
)

func TestMemoryNavigator(t *testing.T) {
	nav := discovery.NewMemoryNavigator("sport=tennis")
	assert.Equal(t, "sport=tennis", nav.ReadQuery())
	assert.Equal(t, 0, nav.Replaces())

	nav.ReplaceQuery("view=map")
	nav.ReplaceQuery("view=map")
	assert.Equal(t, "view=map", nav.ReadQuery())
	assert.Equal(t, 2, nav.Replaces())
}
