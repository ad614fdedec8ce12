// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Suite is the ordered collection of test cases parsed from one source file
// (or one logical discovery group).
type Suite struct {
	Name  string
	Cases []*TestCase
}
