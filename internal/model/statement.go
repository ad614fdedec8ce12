// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "fmt"

// Statement is a single parsed line of a test case body. It is a closed sum
// type: every raw input line maps to exactly one of the nine variants below,
// and both the classifier and the dispatcher switch over it exhaustively.
type Statement interface {
	statement()
	// String reconstructs a canonical single-line form of the statement,
	// used in failure reports.
	fmt.Stringer
}

// OpenModel loads a model file into the runtime before subsequent statements
// execute. The path is an opaque handle passed through to the runtime.
type OpenModel struct {
	Path string
}

// Definition is a procedure or extension declaration. Definitions are
// order-independent relative to executable statements: they are concatenated
// and compiled once, up front, per run.
type Definition struct {
	Source string
}

// Command executes a command scoped to an agent kind and must succeed.
type Command struct {
	Agent AgentKind
	Text  string
}

// CommandError executes a command that must raise a runtime error with
// exactly the given message.
type CommandError struct {
	Agent   AgentKind
	Text    string
	Message string
}

// CommandCompileError compiles a command that must be rejected at compile
// time with exactly the given message.
type CommandCompileError struct {
	Agent   AgentKind
	Text    string
	Message string
}

// CommandStackTrace executes a command that must raise a runtime error whose
// full stack trace equals Trace. Trace holds real newlines; the classifier
// decodes the `\n` escapes.
type CommandStackTrace struct {
	Agent AgentKind
	Text  string
	Trace string
}

// ExpressionResult evaluates an expression whose canonical string rendering
// must equal Expected.
type ExpressionResult struct {
	Text     string
	Expected string
}

// ExpressionError evaluates an expression that must raise a runtime error
// with exactly the given message.
type ExpressionError struct {
	Text    string
	Message string
}

// ExpressionStackTrace evaluates an expression that must raise a runtime
// error whose full stack trace equals Trace.
type ExpressionStackTrace struct {
	Text  string
	Trace string
}

func (OpenModel) statement()            {}
func (Definition) statement()           {}
func (Command) statement()              {}
func (CommandError) statement()         {}
func (CommandCompileError) statement()  {}
func (CommandStackTrace) statement()    {}
func (ExpressionResult) statement()     {}
func (ExpressionError) statement()      {}
func (ExpressionStackTrace) statement() {}

func (s OpenModel) String() string  { return "OPEN> " + s.Path }
func (s Definition) String() string { return s.Source }
func (s Command) String() string {
	return fmt.Sprintf("%s> %s", s.Agent.Code(), s.Text)
}
func (s CommandError) String() string {
	return fmt.Sprintf("%s> %s => ERROR %s", s.Agent.Code(), s.Text, s.Message)
}
func (s CommandCompileError) String() string {
	return fmt.Sprintf("%s> %s => COMPILER ERROR %s", s.Agent.Code(), s.Text, s.Message)
}
func (s CommandStackTrace) String() string {
	return fmt.Sprintf("%s> %s => STACKTRACE %s", s.Agent.Code(), s.Text, encodeTrace(s.Trace))
}
func (s ExpressionResult) String() string {
	return fmt.Sprintf("%s => %s", s.Text, s.Expected)
}
func (s ExpressionError) String() string {
	return fmt.Sprintf("%s => ERROR %s", s.Text, s.Message)
}
func (s ExpressionStackTrace) String() string {
	return fmt.Sprintf("%s => STACKTRACE %s", s.Text, encodeTrace(s.Trace))
}
