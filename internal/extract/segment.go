// Package extract implements the extraction pipeline: splitting pasted text
// into email segments, pulling installment fields out of each segment, and
// memoizing whole-call results.
package extract

import (
	"regexp"
	"strings"
)

var horizontalRule = regexp.MustCompile(`^\s*[-=_]{3,}\s*$`)

// SplitSegments divides a pasted blob into candidate email segments.
//
// The heuristic is deliberately conservative: a boundary is a run of two or
// more blank lines, a horizontal-rule line, or a "From:" header appearing
// after earlier content. A single blank line is an ordinary paragraph break
// and stays inside its segment.
func SplitSegments(text string) []string {
	lines := strings.Split(text, "\n")

	var segments []string
	var current []string
	blankRun := 0

	flush := func() {
		segment := strings.TrimSpace(strings.Join(current, "\n"))
		if segment != "" {
			segments = append(segments, segment)
		}
		current = current[:0]
	}

	for _, line := range lines {
		switch {
		case horizontalRule.MatchString(line):
			flush()
			blankRun = 0
		case strings.TrimSpace(line) == "":
			blankRun++
			if blankRun >= 2 {
				flush()
			} else {
				current = append(current, line)
			}
		default:
			if isFromHeader(line) && hasContent(current) {
				flush()
			}
			blankRun = 0
			current = append(current, line)
		}
	}
	flush()

	return segments
}

func isFromHeader(line string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(line)), "from:")
}

func hasContent(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}
