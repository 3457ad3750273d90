// Package stringtest builds expected strings for tests.
package stringtest

import (
	"regexp"
	"strings"
)

// JoinLF joins lines with LF and no trailing newline.
//
//	stringtest.JoinLF("picker:", "  fps: 20") // -> "picker:\n  fps: 20"
func JoinLF(ss ...string) string {
	return strings.Join(ss, "\n")
}

// Lines terminates every line with LF, the way line-oriented writers emit
// output.
//
//	stringtest.Lines("a", "b") // -> "a\nb\n"
func Lines(ss ...string) string {
	var sb strings.Builder
	for _, s := range ss {
		sb.WriteString(s)
		sb.WriteByte('\n')
	}

	return sb.String()
}

var csi = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)

// StripANSI removes ANSI CSI escape sequences, such as SGR colors, from s.
func StripANSI(s string) string {
	return csi.ReplaceAllString(s, "")
}
