package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/runtime"
)

type stubModule struct {
	name string
}

func (m *stubModule) Register(r *Registry) {
	r.RegisterFactory(m.name, func(_ context.Context, _ *config.Runtime) (runtime.Factory, error) {
		return nil, nil
	})
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := New(&stubModule{name: "http"}, &stubModule{name: "socketio"})
	assert.Equal(t, []string{"http", "socketio"}, r.Types())

	_, err := r.Build(context.Background(), &config.Runtime{Type: "http"})
	require.NoError(t, err)
}

func TestRegistryBuildErrors(t *testing.T) {
	t.Parallel()

	r := New(&stubModule{name: "http"})

	t.Run("nil config", func(t *testing.T) {
		_, err := r.Build(context.Background(), nil)
		require.Error(t, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := r.Build(context.Background(), &config.Runtime{Type: "grpc"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown runtime type "grpc"`)
	})
}

func TestRegisterFactoryDuplicatePanics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		New(&stubModule{name: "http"}, &stubModule{name: "http"})
	})
}
