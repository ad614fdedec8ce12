package parser

import "fmt"

// UnrecognizedLineError reports a body line matching no grammar rule.
type UnrecognizedLineError struct {
	Line string
}

func (e *UnrecognizedLineError) Error() string {
	return fmt.Sprintf("unrecognized line: %q", e.Line)
}

// UnknownAgentError reports an agent code outside {O, T, P, L}.
type UnknownAgentError struct {
	Code string
}

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("unknown agent code: %q", e.Code)
}

// MissingErrorKeywordError reports an agent-command arrow outcome that names
// none of the ERROR, COMPILER ERROR, or STACKTRACE keywords.
type MissingErrorKeywordError struct {
	Outcome string
}

func (e *MissingErrorKeywordError) Error() string {
	return fmt.Sprintf("expected ERROR, COMPILER ERROR, or STACKTRACE after \"=>\", got: %q", e.Outcome)
}
