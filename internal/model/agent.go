// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// AgentKind selects which simulated entity a command or expression executes
// against.
type AgentKind int

const (
	Observer AgentKind = iota
	Turtle
	Patch
	Link
)

// agentCodes maps the single-letter prefix used in test sources to its kind.
var agentCodes = map[string]AgentKind{
	"O": Observer,
	"T": Turtle,
	"P": Patch,
	"L": Link,
}

// ParseAgentCode decodes a single-letter agent code. The second return value
// is false for any code outside {O, T, P, L}.
func ParseAgentCode(code string) (AgentKind, bool) {
	kind, ok := agentCodes[code]
	return kind, ok
}

// Code returns the single-letter source form of the kind.
func (k AgentKind) Code() string {
	switch k {
	case Observer:
		return "O"
	case Turtle:
		return "T"
	case Patch:
		return "P"
	case Link:
		return "L"
	}
	return "?"
}

// String returns the human-readable name of the kind.
func (k AgentKind) String() string {
	switch k {
	case Observer:
		return "observer"
	case Turtle:
		return "turtle"
	case Patch:
		return "patch"
	case Link:
		return "link"
	}
	return "unknown"
}
