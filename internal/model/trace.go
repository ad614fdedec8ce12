// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// DecodeTrace turns the two-character `\n` escapes of a stack-trace payload
// into real newlines. Applied once, by the classifier.
func DecodeTrace(payload string) string {
	return strings.ReplaceAll(payload, `\n`, "\n")
}

// encodeTrace is the inverse of DecodeTrace, used when reconstructing the
// source form of a statement for reports.
func encodeTrace(trace string) string {
	return strings.ReplaceAll(trace, "\n", `\n`)
}
