// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// RunMode is one of the two independent execution strategies a runtime must
// support. The harness does not define how they differ internally, only that
// every eligible test case is exercised under both unless its name carries
// the leading `*` marker.
type RunMode int

const (
	ModeNormal RunMode = iota
	ModeRun
)

// Modes lists both run modes in execution order.
var Modes = []RunMode{ModeNormal, ModeRun}

// String returns the lower-case name used in logs and reports.
func (m RunMode) String() string {
	if m == ModeRun {
		return "run"
	}
	return "normal"
}
