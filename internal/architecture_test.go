package architecture_test

import (
	"testing"

	"github.com/mstrYoda/go-arctest/pkg/arctest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mod = `github\.com/Nazarious-ucu/news-collector`

func TestLayeredArchitecture(t *testing.T) {
	arch, err := arctest.New("../")
	require.NoError(t, err)

	err = arch.ParsePackages()
	require.NoError(t, err, "failed to parse packages")

	domainLayer, err := arctest.NewLayer("domain", `^`+mod+`/internal/models`)
	require.NoError(t, err)

	platformLayer, err := arctest.NewLayer("platform",
		`^`+mod+`/internal/(config|logger|metrics)`)
	require.NoError(t, err)

	appLayer, err := arctest.NewLayer("application",
		`^`+mod+`/internal/(services|notifier)`)
	require.NoError(t, err)

	infraLayer, err := arctest.NewLayer("infrastructure",
		`^`+mod+`/internal/(repository|emailer|messaging|prefs|subscribe)`)
	require.NoError(t, err)

	userLayer, err := arctest.NewLayer("interface", `^`+mod+`/internal/handlers`)
	require.NoError(t, err)

	clientLayer, err := arctest.NewLayer("client", `^`+mod+`/internal/(panel|listener)`)
	require.NoError(t, err)

	layered := arch.NewLayeredArchitecture(domainLayer, platformLayer, appLayer, infraLayer, userLayer, clientLayer)

	assert.NoError(t, appLayer.DependsOnLayer(domainLayer))
	assert.NoError(t, appLayer.DependsOnLayer(platformLayer))

	assert.NoError(t, infraLayer.DependsOnLayer(domainLayer))
	assert.NoError(t, infraLayer.DependsOnLayer(platformLayer))

	assert.NoError(t, userLayer.DependsOnLayer(domainLayer))
	assert.NoError(t, userLayer.DependsOnLayer(platformLayer))
	assert.NoError(t, userLayer.DependsOnLayer(appLayer))

	assert.NoError(t, clientLayer.DependsOnLayer(domainLayer))
	assert.NoError(t, clientLayer.DependsOnLayer(platformLayer))
	assert.NoError(t, clientLayer.DependsOnLayer(infraLayer))

	violations, err := layered.Check()
	require.NoError(t, err)

	for _, v := range violations {
		assert.Failf(t, "layer violation", "%s", v)
	}
}
