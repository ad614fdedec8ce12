// Package testutil provides a scripted runtime implementation and small
// helpers shared by the harness's own tests.
package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/simspec/internal/model"
	"github.com/specialistvlad/simspec/internal/runtime"
)

// ScriptedRuntime implements runtime.Runtime with outcomes programmed per
// input string. Every call is appended to Calls so tests can assert ordering
// and fail-fast behavior. The zero value succeeds at everything and renders
// every expression as the empty string.
type ScriptedRuntime struct {
	Mode model.RunMode

	CompileErr  map[string]error
	ExecErr     map[string]error
	EvalResults map[string]string
	EvalErr     map[string]error
	OpenErr     map[string]error

	Calls        []string
	DisposeCount int
}

func (r *ScriptedRuntime) Compile(_ context.Context, source string) error {
	r.Calls = append(r.Calls, "compile:"+source)
	return r.CompileErr[source]
}

func (r *ScriptedRuntime) Execute(_ context.Context, agent model.AgentKind, command string) error {
	r.Calls = append(r.Calls, "execute:"+agent.Code()+":"+command)
	return r.ExecErr[command]
}

func (r *ScriptedRuntime) Evaluate(_ context.Context, agent model.AgentKind, expression string) (string, error) {
	r.Calls = append(r.Calls, "evaluate:"+agent.Code()+":"+expression)
	if err := r.EvalErr[expression]; err != nil {
		return "", err
	}
	return r.EvalResults[expression], nil
}

func (r *ScriptedRuntime) OpenModel(_ context.Context, path string) error {
	r.Calls = append(r.Calls, "open:"+path)
	return r.OpenErr[path]
}

func (r *ScriptedRuntime) Dispose() {
	r.DisposeCount++
}

// ScriptedFactory hands out ScriptedRuntimes and records every instance it
// created, so tests can assert that each (case, mode) run received a fresh
// runtime and disposed it exactly once.
type ScriptedFactory struct {
	// Script programs each new runtime before it is handed out. Optional.
	Script func(rt *ScriptedRuntime)
	// Err, when set, makes New fail.
	Err error

	mu      sync.Mutex
	Created []*ScriptedRuntime
}

func (f *ScriptedFactory) New(_ context.Context, mode model.RunMode) (runtime.Runtime, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	rt := &ScriptedRuntime{Mode: mode}
	if f.Script != nil {
		f.Script(rt)
	}
	f.mu.Lock()
	f.Created = append(f.Created, rt)
	f.mu.Unlock()
	return rt, nil
}

// CreatedRuntimes returns a snapshot of the runtimes created so far.
func (f *ScriptedFactory) CreatedRuntimes() []*ScriptedRuntime {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*ScriptedRuntime, len(f.Created))
	copy(out, f.Created)
	return out
}
