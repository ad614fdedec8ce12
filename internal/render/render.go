// Package render converts runtime result payloads into the canonical string
// form test expectations are written against: bare numbers, quoted strings,
// true/false booleans, nobody for null, and space-separated bracket lists.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// FromJSON decodes a JSON payload (as returned by remote runtimes) and
// renders it canonically.
func FromJSON(data []byte) (string, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return "", fmt.Errorf("failed to infer result type: %w", err)
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return "", fmt.Errorf("failed to decode result: %w", err)
	}
	return Canonical(val), nil
}

// Canonical renders a value in the expectation syntax. Aggregates render
// element-wise; anything without a defined form falls back to its JSON
// encoding.
func Canonical(val cty.Value) string {
	if val.IsNull() {
		return "nobody"
	}

	ty := val.Type()
	switch {
	case ty == cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	case ty == cty.Number:
		return val.AsBigFloat().Text('f', -1)
	case ty == cty.String:
		return strconv.Quote(val.AsString())
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var parts []string
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			parts = append(parts, Canonical(elem))
		}
		return "[" + strings.Join(parts, " ") + "]"
	}

	data, err := ctyjson.Marshal(val, ty)
	if err != nil {
		return val.GoString()
	}
	return string(data)
}
