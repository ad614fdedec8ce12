package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/simspec/internal/config"
	"github.com/specialistvlad/simspec/internal/registry"
	"github.com/specialistvlad/simspec/internal/runtime"
	"github.com/specialistvlad/simspec/internal/testutil"
)

// scriptedModule registers a testutil factory under the "scripted" runtime
// type so app-level tests run without any real interpreter.
type scriptedModule struct {
	factory *testutil.ScriptedFactory
}

func (m *scriptedModule) Register(r *registry.Registry) {
	r.RegisterFactory("scripted", func(_ context.Context, _ *config.Runtime) (runtime.Factory, error) {
		return m.factory, nil
	})
}

func writeAppFixture(t *testing.T, suite string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "basics.txt"), []byte(suite), 0600))

	cfg := fmt.Sprintf(`
workers = 2

runtime "scripted" {
  url = "stub"
}

suite "basics" {
  path = %q
}
`, dir)
	cfgPath := filepath.Join(dir, "simspec.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0600))
	return cfgPath
}

func TestAppRun_PassingSuite(t *testing.T) {
	t.Parallel()

	factory := &testutil.ScriptedFactory{
		Script: func(rt *testutil.ScriptedRuntime) {
			rt.EvalResults = map[string]string{"count turtles": "5"}
		},
	}
	cfgPath := writeAppFixture(t, "TurtleCount\n  O> crt 5\n  count turtles => 5\n")

	out := &testutil.SafeBuffer{}
	appConfig, err := NewConfig(Config{ConfigPath: cfgPath, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(context.Background(), out, appConfig, registry.New(&scriptedModule{factory: factory}))
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "PASS basics::TurtleCount")
	assert.Contains(t, out.String(), "passed 2, failed 0, skipped 0")
	assert.Len(t, factory.CreatedRuntimes(), 2, "one runtime per run mode")
}

func TestAppRun_FailingSuite(t *testing.T) {
	t.Parallel()

	factory := &testutil.ScriptedFactory{
		Script: func(rt *testutil.ScriptedRuntime) {
			rt.EvalResults = map[string]string{"count turtles": "4"}
		},
	}
	cfgPath := writeAppFixture(t, "TurtleCount\n  O> crt 5\n  count turtles => 5\n")

	out := &testutil.SafeBuffer{}
	appConfig, err := NewConfig(Config{ConfigPath: cfgPath, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(context.Background(), out, appConfig, registry.New(&scriptedModule{factory: factory}))
	runErr := a.Run(context.Background())

	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), "test failure")
	assert.Contains(t, out.String(), "FAIL basics::TurtleCount")
}

func TestAppRun_ValidateOnly(t *testing.T) {
	t.Parallel()

	factory := &testutil.ScriptedFactory{}
	cfgPath := writeAppFixture(t, "TurtleCount\n  O> crt 5\n  count turtles => 5\n")

	out := &testutil.SafeBuffer{}
	appConfig, err := NewConfig(Config{ConfigPath: cfgPath, LogLevel: "error", Validate: true})
	require.NoError(t, err)

	a := NewApp(context.Background(), out, appConfig, registry.New(&scriptedModule{factory: factory}))
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, out.String(), "ok: 1 suite(s), 1 case(s)")
	assert.Empty(t, factory.CreatedRuntimes(), "validate mode must not build runtimes")
}

func TestAppRun_ParseErrorAborts(t *testing.T) {
	t.Parallel()

	factory := &testutil.ScriptedFactory{}
	cfgPath := writeAppFixture(t, "Broken\n  Q> crt 5\n")

	out := &testutil.SafeBuffer{}
	appConfig, err := NewConfig(Config{ConfigPath: cfgPath, LogLevel: "error"})
	require.NoError(t, err)

	a := NewApp(context.Background(), out, appConfig, registry.New(&scriptedModule{factory: factory}))
	runErr := a.Run(context.Background())

	require.Error(t, runErr)
	assert.Contains(t, runErr.Error(), `unknown agent code: "Q"`)
	assert.Empty(t, factory.CreatedRuntimes())
}

func TestNewApp_PanicsOnBadConfig(t *testing.T) {
	t.Parallel()

	appConfig, err := NewConfig(Config{ConfigPath: "does/not/exist.hcl"})
	require.NoError(t, err)

	require.Panics(t, func() {
		NewApp(context.Background(), &testutil.SafeBuffer{}, appConfig, registry.New())
	})
}

func TestLoadModel(t *testing.T) {
	t.Parallel()

	t.Run("suite path shortcut", func(t *testing.T) {
		t.Parallel()

		m, err := loadModel(&Config{SuitePath: "./suites", Workers: 3})
		require.NoError(t, err)
		require.Len(t, m.Suites, 1)
		assert.Equal(t, "cli", m.Suites[0].Name)
		assert.Equal(t, "./suites", m.Suites[0].Path)
		assert.Equal(t, 3, m.Workers)
	})

	t.Run("no suites is an error", func(t *testing.T) {
		t.Parallel()

		_, err := loadModel(&Config{})
		require.Error(t, err)
	})
}
