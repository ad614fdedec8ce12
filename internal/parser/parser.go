package parser

import (
	"github.com/specialistvlad/simspec/internal/model"
)

// ParseSuite runs the full pipeline over one file's content: preprocess,
// split, classify. Any parse error aborts the whole file.
func ParseSuite(suiteName, content string) (*model.Suite, error) {
	cases, err := Split(suiteName, Preprocess(content))
	if err != nil {
		return nil, err
	}
	return &model.Suite{Name: suiteName, Cases: cases}, nil
}
