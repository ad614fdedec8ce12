package runtime

// CompileError reports source rejected at compile time.
type CompileError struct {
	Message string
}

func (e *CompileError) Error() string {
	return "compile error: " + e.Message
}

// ExecError reports a runtime failure while executing a command or
// evaluating an expression. StackTrace holds the full trace with real
// newlines; it may be empty when the runtime does not capture traces.
type ExecError struct {
	Message    string
	StackTrace string
}

func (e *ExecError) Error() string {
	return "runtime error: " + e.Message
}
