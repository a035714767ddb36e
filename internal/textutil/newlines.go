// Package textutil holds the text helpers shared by decoders.
package textutil

import "strings"

// NormaliseNewlines rewrites "\r\n" and lone "\r" to "\n".
// When trim is false no other character is touched, which keeps the
// original spacing that page-oriented consumers depend on. When trim is
// true leading and trailing whitespace is removed as well.
//
// The function is idempotent.
func NormaliseNewlines(s string, trim bool) string {
	if strings.IndexByte(s, '\r') >= 0 {
		var sb strings.Builder
		sb.Grow(len(s))
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c != '\r' {
				sb.WriteByte(c)
				continue
			}
			sb.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		}
		s = sb.String()
	}
	if trim {
		s = strings.TrimSpace(s)
	}
	return s
}

// AppendLineNix appends s followed by a single "\n", regardless of platform.
func AppendLineNix(sb *strings.Builder, s string) {
	sb.WriteString(s)
	sb.WriteByte('\n')
}
