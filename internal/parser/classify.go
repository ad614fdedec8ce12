package parser

import (
	"strings"

	"github.com/specialistvlad/simspec/internal/model"
)

// definitionPrefixes mark lines kept verbatim as procedure/extension source.
var definitionPrefixes = []string{"to ", "to-report ", "extensions"}

// Outcome keywords checked after the arrow. The trailing space is part of
// the keyword: the payload is everything after it.
const (
	kwError        = "ERROR "
	kwCompileError = "COMPILER ERROR "
	kwStackTrace   = "STACKTRACE "
)

const arrow = " => "

// Classify maps one trimmed body line to its Statement variant. Grammar
// rules are checked in precedence order; the first match wins. A line that
// matches no rule is a fatal *UnrecognizedLineError.
func Classify(line string) (model.Statement, error) {
	for _, prefix := range definitionPrefixes {
		if strings.HasPrefix(line, prefix) {
			return model.Definition{Source: line}, nil
		}
	}

	line = strings.TrimSpace(line)

	if code, rest, ok := splitAgentPrefix(line); ok {
		agent, known := model.ParseAgentCode(code)
		if !known {
			return nil, &UnknownAgentError{Code: code}
		}
		if body, outcome, found := splitArrow(rest); found {
			kind, payload := classifyOutcome(outcome)
			switch kind {
			case outcomeError:
				return model.CommandError{Agent: agent, Text: body, Message: payload}, nil
			case outcomeCompileError:
				return model.CommandCompileError{Agent: agent, Text: body, Message: payload}, nil
			case outcomeStackTrace:
				return model.CommandStackTrace{Agent: agent, Text: body, Trace: model.DecodeTrace(payload)}, nil
			}
			return nil, &MissingErrorKeywordError{Outcome: outcome}
		}
		return model.Command{Agent: agent, Text: rest}, nil
	}

	if body, outcome, found := splitArrow(line); found {
		kind, payload := classifyOutcome(outcome)
		switch kind {
		case outcomeError, outcomeCompileError:
			// The sum type has no expression compile-error variant; a
			// compile failure surfaces through Evaluate like any error.
			return model.ExpressionError{Text: body, Message: payload}, nil
		case outcomeStackTrace:
			return model.ExpressionStackTrace{Text: body, Trace: model.DecodeTrace(payload)}, nil
		}
		return model.ExpressionResult{Text: body, Expected: outcome}, nil
	}

	if path, ok := strings.CutPrefix(line, "OPEN> "); ok {
		return model.OpenModel{Path: path}, nil
	}

	return nil, &UnrecognizedLineError{Line: line}
}

// splitAgentPrefix recognizes the `X> ` agent prefix. It matches any single
// upper-case letter so that an unknown code fails loudly in Classify instead
// of falling through to the expression grammar.
func splitAgentPrefix(line string) (code, rest string, ok bool) {
	if len(line) < 3 || line[1] != '>' || line[2] != ' ' {
		return "", "", false
	}
	if line[0] < 'A' || line[0] > 'Z' {
		return "", "", false
	}
	return line[:1], line[3:], true
}

// splitArrow splits a line at the last ` => ` separator. Expected values
// never contain the separator, but expression bodies may.
func splitArrow(line string) (body, outcome string, found bool) {
	idx := strings.LastIndex(line, arrow)
	if idx < 0 {
		return "", "", false
	}
	return line[:idx], line[idx+len(arrow):], true
}

type outcomeKind int

const (
	outcomePlain outcomeKind = iota
	outcomeError
	outcomeCompileError
	outcomeStackTrace
)

// classifyOutcome recognizes the outcome keyword, if any, and returns the
// payload after it. COMPILER ERROR is checked before ERROR, which it does
// not prefix, purely to keep the precedence explicit.
func classifyOutcome(outcome string) (outcomeKind, string) {
	switch {
	case strings.HasPrefix(outcome, kwStackTrace):
		return outcomeStackTrace, outcome[len(kwStackTrace):]
	case strings.HasPrefix(outcome, kwCompileError):
		return outcomeCompileError, outcome[len(kwCompileError):]
	case strings.HasPrefix(outcome, kwError):
		return outcomeError, outcome[len(kwError):]
	}
	return outcomePlain, outcome
}
