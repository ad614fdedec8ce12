package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/simspec/internal/ctxlog"
	"github.com/specialistvlad/simspec/internal/filter"
	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/report"
	"github.com/specialistvlad/simspec/internal/runtime"
)

// state tracks the lifecycle of one test case across its run modes.
type state int

const (
	stateNotRun state = iota
	stateRunningNormal
	stateRunningAlt
	stateDone
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateNotRun:
		return "not-run"
	case stateRunningNormal:
		return "running-normal"
	case stateRunningAlt:
		return "running-alt"
	case stateDone:
		return "done"
	case stateFailed:
		return "failed"
	}
	return "unknown"
}

// Dispatcher runs test cases against runtimes produced by a factory.
type Dispatcher struct {
	factory runtime.Factory
	env     filter.Env
	workers int
}

// New creates a Dispatcher. workers below 1 is clamped to 1.
func New(factory runtime.Factory, env filter.Env, workers int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	return &Dispatcher{factory: factory, env: env, workers: workers}
}

// runCase executes one test case under each of its run modes. The two runs
// are fully independent: each gets a fresh runtime, and a failure in one
// never short-circuits the other.
func (d *Dispatcher) runCase(ctx context.Context, tc *model.TestCase) []report.Result {
	logger := ctxlog.FromContext(ctx).With("case", tc.ID())

	st := stateNotRun
	transition := func(next state) {
		logger.Debug("Case state transition.", "from", st.String(), "to", next.String())
		st = next
	}

	failed := false
	var results []report.Result
	for _, mode := range filter.Modes(tc) {
		if mode == model.ModeNormal {
			transition(stateRunningNormal)
		} else {
			transition(stateRunningAlt)
		}
		res := d.runOnce(ctx, tc, mode)
		if res.Status == report.StatusFail {
			failed = true
		}
		results = append(results, res)
	}

	if failed {
		transition(stateFailed)
	} else {
		transition(stateDone)
	}
	return results
}

// runOnce executes one (test case, run mode) pair against a fresh runtime.
// The runtime is acquired at the top and disposed on every exit path.
func (d *Dispatcher) runOnce(ctx context.Context, tc *model.TestCase, mode model.RunMode) report.Result {
	logger := ctxlog.FromContext(ctx).With("case", tc.ID(), "mode", mode.String())
	logger.Debug("Run starting.")

	rt, err := d.factory.New(ctx, mode)
	if err != nil {
		return failure(tc, mode, 0, "", "failed to create runtime: "+err.Error(), "", "")
	}
	defer rt.Dispose()

	if defs := tc.Definitions(); defs != "" {
		if err := rt.Compile(ctx, defs); err != nil {
			return failure(tc, mode, 0, "", "definitions failed to compile", "clean compile", errText(err))
		}
	}

	for i, stmt := range tc.Executable() {
		if res, ok := d.runStatement(ctx, rt, tc, mode, i+1, stmt); !ok {
			logger.Debug("Run failed, aborting remaining statements.", "statement", i+1)
			return res
		}
	}

	logger.Debug("Run passed.")
	return report.Result{Suite: tc.Suite, Case: tc.Name, Mode: mode, Status: report.StatusPass}
}

// runStatement dispatches one executable statement by variant. The returned
// bool is false when the run must abort (fail-fast).
func (d *Dispatcher) runStatement(ctx context.Context, rt runtime.Runtime, tc *model.TestCase, mode model.RunMode, index int, stmt model.Statement) (report.Result, bool) {
	fail := func(reason, expected, actual string) (report.Result, bool) {
		return failure(tc, mode, index, stmt.String(), reason, expected, actual), false
	}
	pass := func() (report.Result, bool) {
		return report.Result{}, true
	}

	switch s := stmt.(type) {
	case model.OpenModel:
		if err := rt.OpenModel(ctx, s.Path); err != nil {
			return fail("unexpected error opening model", "", errText(err))
		}
		return pass()

	case model.Definition:
		// Unreachable after the construction-time partition, but the
		// grammar allows interleaving: merge into the running set.
		if err := rt.Compile(ctx, s.Source); err != nil {
			return fail("unexpected error compiling definition", "clean compile", errText(err))
		}
		return pass()

	case model.Command:
		if err := rt.Execute(ctx, s.Agent, s.Text); err != nil {
			return fail("unexpected error", "", errText(err))
		}
		return pass()

	case model.CommandError:
		err := rt.Execute(ctx, s.Agent, s.Text)
		if err == nil {
			return fail("succeeded where a runtime error was expected", s.Message, "(no error)")
		}
		var execErr *runtime.ExecError
		if !errors.As(err, &execErr) {
			return fail("expected a runtime error", s.Message, errText(err))
		}
		if execErr.Message != s.Message {
			return fail("error message mismatch", s.Message, execErr.Message)
		}
		return pass()

	case model.CommandCompileError:
		err := rt.Compile(ctx, s.Text)
		if err == nil {
			return fail("compiled successfully where a compile error was expected", s.Message, "(compiled)")
		}
		var compileErr *runtime.CompileError
		if !errors.As(err, &compileErr) {
			return fail("expected a compile error", s.Message, errText(err))
		}
		if compileErr.Message != s.Message {
			return fail("compile error message mismatch", s.Message, compileErr.Message)
		}
		return pass()

	case model.CommandStackTrace:
		err := rt.Execute(ctx, s.Agent, s.Text)
		if err == nil {
			return fail("succeeded where a runtime error was expected", s.Trace, "(no error)")
		}
		var execErr *runtime.ExecError
		if !errors.As(err, &execErr) {
			return fail("expected a runtime error with a stack trace", s.Trace, errText(err))
		}
		if execErr.StackTrace != s.Trace {
			return fail("stack trace mismatch", s.Trace, execErr.StackTrace)
		}
		return pass()

	case model.ExpressionResult:
		actual, err := rt.Evaluate(ctx, model.Observer, s.Text)
		if err != nil {
			return fail("unexpected error", s.Expected, errText(err))
		}
		if actual != s.Expected {
			return fail("result mismatch", s.Expected, actual)
		}
		return pass()

	case model.ExpressionError:
		_, err := rt.Evaluate(ctx, model.Observer, s.Text)
		if err == nil {
			return fail("succeeded where an error was expected", s.Message, "(no error)")
		}
		if msg := errText(err); msg != s.Message {
			return fail("error message mismatch", s.Message, msg)
		}
		return pass()

	case model.ExpressionStackTrace:
		_, err := rt.Evaluate(ctx, model.Observer, s.Text)
		if err == nil {
			return fail("succeeded where an error was expected", s.Trace, "(no error)")
		}
		var execErr *runtime.ExecError
		if !errors.As(err, &execErr) {
			return fail("expected a runtime error with a stack trace", s.Trace, errText(err))
		}
		if execErr.StackTrace != s.Trace {
			return fail("stack trace mismatch", s.Trace, execErr.StackTrace)
		}
		return pass()
	}

	// A new Statement variant without a dispatch arm is a programmer error.
	panic(fmt.Sprintf("dispatch: unhandled statement variant %T", stmt))
}

// errText extracts the comparable message from a runtime-produced error.
// Expression expectations do not discriminate between compile-stage and
// run-stage failures: the classifier folds both onto the same variant.
func errText(err error) string {
	var execErr *runtime.ExecError
	if errors.As(err, &execErr) {
		return execErr.Message
	}
	var compileErr *runtime.CompileError
	if errors.As(err, &compileErr) {
		return compileErr.Message
	}
	return err.Error()
}

func failure(tc *model.TestCase, mode model.RunMode, index int, statement, reason, expected, actual string) report.Result {
	return report.Result{
		Suite:          tc.Suite,
		Case:           tc.Name,
		Mode:           mode,
		Status:         report.StatusFail,
		Reason:         reason,
		StatementIndex: index,
		Statement:      statement,
		Expected:       expected,
		Actual:         actual,
	}
}
