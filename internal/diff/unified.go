package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Unified renders a unified diff of oldText against newText with three lines
// of context, labeled with the given file names. Identical texts render to
// the empty string.
func Unified(oldText, newText, fromFile, toFile string) (string, error) {
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(oldText),
		B:        difflib.SplitLines(newText),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("rendering unified diff: %w", err)
	}
	return text, nil
}
