package parser

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/simspec/internal/model"
)

// Split groups preprocessed lines into test cases. A line with no leading
// whitespace is a header naming a new case; every immediately following
// indented line is trimmed, classified, and appended to that case. A header
// with no followers yields a legal, vacuously passing case.
//
// An explicit cursor loop keeps the grammar iterative; large suites must not
// be limited by stack depth.
func Split(suiteName string, lines []string) ([]*model.TestCase, error) {
	var cases []*model.TestCase

	i := 0
	for i < len(lines) {
		if isIndented(lines[i]) {
			return nil, fmt.Errorf("suite %s: indented line before any test header: %q", suiteName, strings.TrimSpace(lines[i]))
		}
		name := strings.TrimSpace(lines[i])
		i++

		var statements []model.Statement
		for i < len(lines) && isIndented(lines[i]) {
			body := strings.TrimSpace(lines[i])
			st, err := Classify(body)
			if err != nil {
				return nil, fmt.Errorf("suite %s, case %s: %w", suiteName, name, err)
			}
			statements = append(statements, st)
			i++
		}
		cases = append(cases, model.NewTestCase(suiteName, name, statements))
	}
	return cases, nil
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")
}
