package codec

import "strings"

// splitObjects locates the top-level object literals in the body of an array
// literal (text strictly between the outer brackets) and returns them in
// order, each span including its own enclosing braces.
//
// Single pass, two pieces of state: an in-quoted-literal flag and a brace
// depth counter. A backslash sets a one-shot escape so an escaped quote does
// not flip the flag, and braces inside quoted literals are never counted,
// so commas, braces, and quotes inside a free-text notes value are invisible
// to the structural scan. Depth counting also keeps the scan correct for nested
// brace structures, even though the schema here is flat.
func splitObjects(body string) []string {
	var spans []string
	depth := 0
	start := 0
	inString := false
	escaped := false

	for i := 0; i < len(body); i++ {
		c := body[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 {
				spans = append(spans, strings.TrimSpace(body[start:i+1]))
			}
		}
	}

	return spans
}
