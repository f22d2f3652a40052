package codec

import (
	"fmt"
	"strings"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// EncodeSessions emits the session list as an array literal, one record per
// indented line, in list order. An empty list encodes to "[]".
func EncodeSessions(sessions []domain.Session) string {
	if len(sessions) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for i, s := range sessions {
		b.WriteString("  ")
		b.WriteString(EncodeSession(s))
		if i < len(sessions)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteByte(']')
	return b.String()
}

// DecodeSessions parses array text back into a session list.
//
// Empty input and the empty-array literal decode to an empty list. Text that
// does not begin with '[' and end with ']' fails with ErrMalformedCollection
// and no partial result. Each object span is then decoded independently; a
// span that fails to decode is dropped from the result rather than aborting
// the whole decode, and the number of dropped spans is reported so callers
// can log or surface the loss.
func DecodeSessions(text string) (sessions []domain.Session, skipped int, err error) {
	sessions = []domain.Session{}

	text = strings.TrimSpace(text)
	if text == "" || text == "[]" {
		return sessions, 0, nil
	}
	if !strings.HasPrefix(text, "[") || !strings.HasSuffix(text, "]") {
		return nil, 0, fmt.Errorf("%w: missing outer brackets", ErrMalformedCollection)
	}

	body := strings.TrimSpace(text[1 : len(text)-1])
	if body == "" {
		return sessions, 0, nil
	}

	for _, span := range splitObjects(body) {
		s, err := DecodeSession(span)
		if err != nil {
			skipped++
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, skipped, nil
}
