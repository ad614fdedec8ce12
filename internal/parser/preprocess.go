package parser

import "strings"

// continuation is the raw two-line form of a multi-line payload: a trailing
// backslash followed by a newline and two spaces of hanging indent.
const continuation = "\\\n  "

// Preprocess normalizes raw file content into the line sequence the splitter
// consumes: continuation sequences are folded into the two-character `\n`
// escape, and comment and blank lines are removed. The result is stable
// under a second application.
func Preprocess(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, continuation, `\n`)

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
