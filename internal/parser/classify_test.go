package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/simspec/internal/model"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected model.Statement
	}{
		{
			name:     "plain observer command",
			line:     "O> crt 1",
			expected: model.Command{Agent: model.Observer, Text: "crt 1"},
		},
		{
			name:     "turtle command",
			line:     "T> fd 1",
			expected: model.Command{Agent: model.Turtle, Text: "fd 1"},
		},
		{
			name:     "patch command",
			line:     "P> set pcolor green",
			expected: model.Command{Agent: model.Patch, Text: "set pcolor green"},
		},
		{
			name:     "link command",
			line:     "L> die",
			expected: model.Command{Agent: model.Link, Text: "die"},
		},
		{
			name:     "command expecting error",
			line:     "O> crt 1 => ERROR some message",
			expected: model.CommandError{Agent: model.Observer, Text: "crt 1", Message: "some message"},
		},
		{
			name:     "command expecting compiler error",
			line:     "O> crt => COMPILER ERROR CRT expected 1 input",
			expected: model.CommandCompileError{Agent: model.Observer, Text: "crt", Message: "CRT expected 1 input"},
		},
		{
			name:     "command expecting stack trace decodes newlines",
			line:     `O> explode => STACKTRACE boom\nat frame one\nat frame two`,
			expected: model.CommandStackTrace{Agent: model.Observer, Text: "explode", Trace: "boom\nat frame one\nat frame two"},
		},
		{
			name:     "expression expecting result",
			line:     "[turtle-set self] of turtle 0 = turtles => true",
			expected: model.ExpressionResult{Text: "[turtle-set self] of turtle 0 = turtles", Expected: "true"},
		},
		{
			name:     "expression expecting error",
			line:     "count turtles / 0 => ERROR Division by zero.",
			expected: model.ExpressionError{Text: "count turtles / 0", Message: "Division by zero."},
		},
		{
			name:     "expression compile failure reported as error",
			line:     "count => COMPILER ERROR COUNT expected 1 input",
			expected: model.ExpressionError{Text: "count", Message: "COUNT expected 1 input"},
		},
		{
			name:     "expression expecting stack trace",
			line:     `runresult "explode" => STACKTRACE boom\nat frame one`,
			expected: model.ExpressionStackTrace{Text: `runresult "explode"`, Trace: "boom\nat frame one"},
		},
		{
			name:     "open model",
			line:     "OPEN> models/flocking.sim",
			expected: model.OpenModel{Path: "models/flocking.sim"},
		},
		{
			name:     "procedure definition kept verbatim",
			line:     "to setup clear-all create-turtles 10 end",
			expected: model.Definition{Source: "to setup clear-all create-turtles 10 end"},
		},
		{
			name:     "reporter definition",
			line:     "to-report double [x] report x * 2 end",
			expected: model.Definition{Source: "to-report double [x] report x * 2 end"},
		},
		{
			name:     "extensions declaration",
			line:     "extensions [array table]",
			expected: model.Definition{Source: "extensions [array table]"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Classify(tc.line)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, st); diff != "" {
				t.Errorf("statement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		target any
	}{
		{
			name:   "unknown agent code",
			line:   "X> crt 1",
			target: &UnknownAgentError{},
		},
		{
			name:   "unknown agent code with arrow",
			line:   "Q> crt 1 => ERROR nope",
			target: &UnknownAgentError{},
		},
		{
			name:   "command outcome without keyword",
			line:   "O> crt 1 => true",
			target: &MissingErrorKeywordError{},
		},
		{
			name:   "free text matches nothing",
			line:   "this is not a statement",
			target: &UnrecognizedLineError{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Classify(tc.line)
			require.Error(t, err)
			assert.Nil(t, st)

			switch target := tc.target.(type) {
			case *UnknownAgentError:
				var got *UnknownAgentError
				require.True(t, errors.As(err, &got), "expected %T, got %v", target, err)
			case *MissingErrorKeywordError:
				var got *MissingErrorKeywordError
				require.True(t, errors.As(err, &got), "expected %T, got %v", target, err)
			case *UnrecognizedLineError:
				var got *UnrecognizedLineError
				require.True(t, errors.As(err, &got), "expected %T, got %v", target, err)
			}
		})
	}
}

// Classifying an agent command with an expected error and re-deriving the
// agent, command, and message from the variant recovers the original triple.
func TestClassifyCommandErrorRoundTrip(t *testing.T) {
	testCases := []struct {
		agent   model.AgentKind
		command string
		message string
	}{
		{model.Observer, "crt 1", "some message"},
		{model.Turtle, "set color [1 2 3]", "Expected a color."},
		{model.Patch, "sprout -1", "A negative count is not allowed."},
		{model.Link, "tie", "Only directed links can be tied."},
	}

	for _, tc := range testCases {
		line := tc.agent.Code() + "> " + tc.command + " => ERROR " + tc.message
		st, err := Classify(line)
		require.NoError(t, err, "line %q", line)

		cmdErr, ok := st.(model.CommandError)
		require.True(t, ok, "line %q classified as %T", line, st)
		assert.Equal(t, tc.agent, cmdErr.Agent)
		assert.Equal(t, tc.command, cmdErr.Text)
		assert.Equal(t, tc.message, cmdErr.Message)
	}
}
