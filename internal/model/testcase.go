// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// TestCase is one named block of statements from a suite file. It is built
// once by the block splitter and never mutated afterwards.
type TestCase struct {
	Suite      string
	Name       string
	Statements []Statement

	definitions string
	executable  []Statement
}

// NewTestCase constructs a TestCase and performs the one-time partition of
// its statements: Definition statements are concatenated (original order,
// newline-separated) into a single compile blob, everything else stays in
// original order for sequential execution.
func NewTestCase(suite, name string, statements []Statement) *TestCase {
	tc := &TestCase{
		Suite:      suite,
		Name:       name,
		Statements: statements,
	}

	var defs []string
	for _, st := range statements {
		if def, ok := st.(Definition); ok {
			defs = append(defs, def.Source)
			continue
		}
		tc.executable = append(tc.executable, st)
	}
	tc.definitions = strings.Join(defs, "\n")
	return tc
}

// Definitions returns the newline-joined procedure/extension blob compiled
// once per run, before any executable statement.
func (tc *TestCase) Definitions() string { return tc.definitions }

// Executable returns the non-definition statements in source order.
func (tc *TestCase) Executable() []Statement { return tc.executable }

// NormalOnly reports whether the case is exempt from the second run mode,
// marked by a leading `*` on its name.
func (tc *TestCase) NormalOnly() bool {
	return strings.HasPrefix(tc.Name, "*")
}

// BareName returns the case name without the leading `*` marker, if any.
// Eligibility rules apply to the bare name.
func (tc *TestCase) BareName() string {
	return strings.TrimPrefix(tc.Name, "*")
}

// ID returns the stable identifier used in reports: "suite::name".
func (tc *TestCase) ID() string {
	return tc.Suite + "::" + tc.Name
}
