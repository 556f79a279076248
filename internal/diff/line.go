// Package diff implements the change-detection core: line-level diffing of
// two text blobs and classification of a local file set against a remote
// status snapshot. Both operations are pure and deterministic.
package diff

import "strings"

// LineType classifies a single line in a line diff.
type LineType int

const (
	// Same lines appear in both texts.
	Same LineType = iota
	// Added lines appear only in the new text.
	Added
	// Removed lines appear only in the old text.
	Removed
)

// String returns the wire name of the line type.
func (t LineType) String() string {
	switch t {
	case Same:
		return "same"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Line is one element of a line diff.
type Line struct {
	Type LineType
	Text string
}

// DiffLines computes a line-level diff between oldText and newText using a
// longest-common-subsequence table over lines.
//
// The result is ordered top to bottom and satisfies the reconstruction
// property: joining the Same and Added lines with "\n" yields newText
// exactly, and joining the Same and Removed lines yields oldText exactly.
//
// Runs in O(m*n) time and space for m old lines and n new lines. That is
// fine for skill files, which are small text documents, and unsuitable for
// very large inputs; callers with big blobs need a different algorithm.
func DiffLines(oldText, newText string) []Line {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	m, n := len(oldLines), len(newLines)

	// dp[i][j] is the LCS length of oldLines[:i] and newLines[:j].
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if oldLines[i-1] == newLines[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrack from (m, n). On equal dp values the new sequence is consumed
	// first, so an insertion wins the tie over a deletion; output order is
	// deterministic because of it.
	var out []Line
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && oldLines[i-1] == newLines[j-1]:
			out = append(out, Line{Type: Same, Text: oldLines[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			out = append(out, Line{Type: Added, Text: newLines[j-1]})
			j--
		default:
			out = append(out, Line{Type: Removed, Text: oldLines[i-1]})
			i--
		}
	}

	// The backtrack walked end to start; flip to forward order.
	for a, b := 0, len(out)-1; a < b; a, b = a+1, b-1 {
		out[a], out[b] = out[b], out[a]
	}
	return out
}

// splitLines splits text on "\n". The empty text splits to no lines rather
// than a single empty line, so diffing against "" yields pure additions or
// removals and reconstruction still round-trips.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
