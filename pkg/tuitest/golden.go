package tuitest

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"
)

// RequireGolden compares a rendered view, with ANSI codes and trailing
// spaces stripped, against testdata/<test name>.golden. Run the tests with
// -update to rewrite the file.
func RequireGolden(t *testing.T, view string) {
	t.Helper()
	golden.RequireEqual(t, []byte(StripANSI(view)))
}
