// Package runtime defines the collaborator interface the dispatcher drives:
// a language runtime that can compile definitions, execute agent-scoped
// commands, evaluate expressions to their canonical string rendering, and
// open models. Implementations live under modules/.
package runtime

import (
	"context"

	"github.com/specialistvlad/simspec/internal/model"
)

// Runtime is one live interpreter instance. A Runtime is owned by exactly
// one (test case, run mode) execution, is not safe for concurrent use, and
// must be disposed exactly once at the end of that execution.
type Runtime interface {
	// Compile loads procedure/extension source into the runtime. A failure
	// is a *CompileError.
	Compile(ctx context.Context, source string) error

	// Execute runs a command scoped to an agent of the given kind. A
	// runtime failure is an *ExecError; a compile-stage rejection of the
	// command is a *CompileError.
	Execute(ctx context.Context, agent model.AgentKind, command string) error

	// Evaluate evaluates an expression scoped to an agent of the given kind
	// and returns the runtime's canonical string rendering of the result.
	Evaluate(ctx context.Context, agent model.AgentKind, expression string) (string, error)

	// OpenModel loads the named model. The path is an opaque handle.
	OpenModel(ctx context.Context, path string) error

	// Dispose releases all resources held by the instance. Idempotent.
	Dispose()
}

// Factory creates a fresh Runtime for one (test case, run mode) execution.
// Factories must be safe for concurrent use; the Runtimes they return need
// not be.
type Factory interface {
	New(ctx context.Context, mode model.RunMode) (Runtime, error)
}
