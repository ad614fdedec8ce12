package socketruntime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/simspec/internal/config"
)

func TestNewFactoryConfig(t *testing.T) {
	t.Run("url is required", func(t *testing.T) {
		_, err := newFactory(context.Background(), &config.Runtime{})
		require.Error(t, err)
	})

	t.Run("invalid timeout rejected", func(t *testing.T) {
		_, err := newFactory(context.Background(), &config.Runtime{
			URL:     "http://localhost:9170/lang",
			Timeout: "soon",
		})
		require.Error(t, err)
	})

	t.Run("url split into base and path", func(t *testing.T) {
		f, err := newFactory(context.Background(), &config.Runtime{
			URL:       "https://interp.example:9170/lang",
			Namespace: "/tests",
			Timeout:   "5s",
		})
		require.NoError(t, err)

		factory := f.(*Factory)
		assert.Equal(t, "https://interp.example:9170", factory.baseURL)
		assert.Equal(t, "/lang", factory.path)
		assert.Equal(t, "/tests", factory.namespace)
		assert.Equal(t, 5*time.Second, factory.timeout)
	})
}
