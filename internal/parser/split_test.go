package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/simspec/internal/model"
)

func TestSplitSingleCase(t *testing.T) {
	lines := []string{
		"TurtleSet_2D",
		"  O> crt 1",
		"  [turtle-set self] of turtle 0 = turtles => true",
	}

	cases, err := Split("turtlesets", lines)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	tc := cases[0]
	assert.Equal(t, "TurtleSet_2D", tc.Name)
	assert.Equal(t, "turtlesets", tc.Suite)

	expected := []model.Statement{
		model.Command{Agent: model.Observer, Text: "crt 1"},
		model.ExpressionResult{Text: "[turtle-set self] of turtle 0 = turtles", Expected: "true"},
	}
	if diff := cmp.Diff(expected, tc.Statements); diff != "" {
		t.Errorf("statements mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitMultipleCases(t *testing.T) {
	lines := []string{
		"First",
		"  O> crt 1",
		"Second",
		"  count turtles => 1",
		"  O> clear-all",
		"Third",
	}

	cases, err := Split("smoke", lines)
	require.NoError(t, err)
	require.Len(t, cases, 3)

	assert.Equal(t, "First", cases[0].Name)
	assert.Len(t, cases[0].Statements, 1)
	assert.Equal(t, "Second", cases[1].Name)
	assert.Len(t, cases[1].Statements, 2)

	// A header with no followers is a legal, vacuously passing case.
	assert.Equal(t, "Third", cases[2].Name)
	assert.Empty(t, cases[2].Statements)
}

func TestSplitPartitionsDefinitions(t *testing.T) {
	lines := []string{
		"Doubling",
		"  to-report double [x] report x * 2 end",
		"  O> crt 1",
		"  to setup clear-all end",
		"  double 21 => 42",
	}

	cases, err := Split("procs", lines)
	require.NoError(t, err)
	require.Len(t, cases, 1)

	tc := cases[0]
	assert.Equal(t, "to-report double [x] report x * 2 end\nto setup clear-all end", tc.Definitions())
	require.Len(t, tc.Executable(), 2)
	assert.IsType(t, model.Command{}, tc.Executable()[0])
	assert.IsType(t, model.ExpressionResult{}, tc.Executable()[1])
	// Original statement order survives untouched.
	assert.Len(t, tc.Statements, 4)
}

func TestSplitErrors(t *testing.T) {
	t.Run("classification failure aborts the file", func(t *testing.T) {
		lines := []string{
			"Broken",
			"  X> crt 1",
		}
		cases, err := Split("broken", lines)
		require.Error(t, err)
		assert.Nil(t, cases)
		assert.Contains(t, err.Error(), "case Broken")
	})

	t.Run("indented line before any header", func(t *testing.T) {
		lines := []string{
			"  O> crt 1",
		}
		cases, err := Split("orphan", lines)
		require.Error(t, err)
		assert.Nil(t, cases)
	})
}

func TestParseSuite(t *testing.T) {
	content := `# turtle-set coverage
TurtleSet_2D
  O> crt 1
  [turtle-set self] of turtle 0 = turtles => true

*Slow
  O> repeat 100000 [ crt 1 ]
`
	suite, err := ParseSuite("turtlesets", content)
	require.NoError(t, err)
	assert.Equal(t, "turtlesets", suite.Name)
	require.Len(t, suite.Cases, 2)

	assert.Equal(t, "TurtleSet_2D", suite.Cases[0].Name)
	assert.False(t, suite.Cases[0].NormalOnly())

	assert.Equal(t, "*Slow", suite.Cases[1].Name)
	assert.True(t, suite.Cases[1].NormalOnly())
	assert.Equal(t, "Slow", suite.Cases[1].BareName())
	assert.Equal(t, "turtlesets::*Slow", suite.Cases[1].ID())
}
