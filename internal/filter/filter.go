// Package filter decides which test cases run in the current environment.
// The environment is an explicit immutable value so the decision stays pure
// and unit-testable; nothing here reads ambient process state.
package filter

import (
	"strings"

	"github.com/specialistvlad/simspec/internal/model"
)

// Env captures the two environment axes a case name can select on.
type Env struct {
	Is3D              bool
	UsesCodeGenerator bool
}

// ShouldRun reports whether a case is eligible under env. Both the
// dimensionality suffix rule and the code-generator prefix rule must hold.
// Rules apply to the bare name, without the leading `*` marker.
func ShouldRun(tc *model.TestCase, env Env) bool {
	name := tc.BareName()

	switch {
	case strings.HasSuffix(name, "_2D") && env.Is3D:
		return false
	case strings.HasSuffix(name, "_3D") && !env.Is3D:
		return false
	}

	switch {
	case strings.HasPrefix(name, "NoGenerator") && env.UsesCodeGenerator:
		return false
	case strings.HasPrefix(name, "Generator") && !env.UsesCodeGenerator:
		return false
	}

	return true
}

// Modes returns the run modes a case is exercised under once eligible: both
// modes normally, Normal only for `*`-marked cases.
func Modes(tc *model.TestCase) []model.RunMode {
	if tc.NormalOnly() {
		return []model.RunMode{model.ModeNormal}
	}
	return model.Modes
}
