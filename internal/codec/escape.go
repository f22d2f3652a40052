package codec

import "strings"

// escaper rewrites the characters that cannot appear raw inside a quoted
// literal. Single-pass replacement: a backslash produced by one rule is
// never re-examined by another, so input that already looks escaped
// (e.g. a literal `\n` two-character sequence) stays distinguishable from
// a real newline.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// escapeString makes s safe to embed inside a quoted literal.
func escapeString(s string) string {
	return escaper.Replace(s)
}

// unescapeString is the inverse of escapeString. It scans left to right so
// that each backslash consumes exactly one following character; sequential
// whole-string replacement would corrupt adversarial input like `\\n`.
// An unknown escape or a trailing backslash is kept verbatim.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
