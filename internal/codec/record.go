package codec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

// dateLayout is the textual calendar-date form used in the file/wire format.
const dateLayout = "2006-01-02"

// EncodeSession emits one session as a brace-delimited object literal with
// the canonical key order id, subject, durationMinutes, date, startTime,
// endTime, notes. Absent optional values are emitted as explicit null so the
// record shape is self-describing.
func EncodeSession(s domain.Session) string {
	var b strings.Builder
	b.WriteString(`{"id":"`)
	b.WriteString(escapeString(s.ID))
	b.WriteString(`","subject":"`)
	b.WriteString(escapeString(s.Subject))
	b.WriteString(`","durationMinutes":`)
	b.WriteString(strconv.Itoa(s.DurationMinutes))
	b.WriteString(`,"date":"`)
	b.WriteString(s.Date.Format(dateLayout))
	b.WriteByte('"')

	writeTimeField(&b, "startTime", s.StartTime)
	writeTimeField(&b, "endTime", s.EndTime)

	if s.Notes != nil && *s.Notes != "" {
		b.WriteString(`,"notes":"`)
		b.WriteString(escapeString(*s.Notes))
		b.WriteByte('"')
	} else {
		b.WriteString(`,"notes":null`)
	}

	b.WriteByte('}')
	return b.String()
}

func writeTimeField(b *strings.Builder, key string, t *domain.TimeOfDay) {
	b.WriteString(`,"`)
	b.WriteString(key)
	b.WriteString(`":`)
	if t == nil {
		b.WriteString("null")
		return
	}
	b.WriteByte('"')
	b.WriteString(t.String())
	b.WriteByte('"')
}

// DecodeSession parses one object literal back into a session.
// Field order does not matter and unrecognized keys are ignored; when a key
// occurs more than once the first occurrence wins. Returns ErrMalformedRecord
// when the outer braces are absent, a required field (id, subject,
// durationMinutes, date) cannot be established, durationMinutes is not a
// positive integer, or date is not a valid calendar date. Invalid optional
// time values are treated as absent rather than fatal.
func DecodeSession(text string) (domain.Session, error) {
	text = strings.TrimSpace(text)
	if len(text) < 2 || text[0] != '{' || text[len(text)-1] != '}' {
		return domain.Session{}, fmt.Errorf("%w: not an object literal", ErrMalformedRecord)
	}
	fields := scanFields(text[1 : len(text)-1])

	id, ok := fields.text("id")
	if !ok || id == "" {
		return domain.Session{}, fmt.Errorf("%w: missing id", ErrMalformedRecord)
	}
	subject, ok := fields.text("subject")
	if !ok || strings.TrimSpace(subject) == "" {
		return domain.Session{}, fmt.Errorf("%w: missing subject", ErrMalformedRecord)
	}
	durationText, ok := fields.text("durationMinutes")
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: missing durationMinutes", ErrMalformedRecord)
	}
	minutes, err := strconv.Atoi(durationText)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: invalid durationMinutes %q", ErrMalformedRecord, durationText)
	}
	if minutes <= 0 {
		return domain.Session{}, fmt.Errorf("%w: durationMinutes must be positive", ErrMalformedRecord)
	}
	dateText, ok := fields.text("date")
	if !ok {
		return domain.Session{}, fmt.Errorf("%w: missing date", ErrMalformedRecord)
	}
	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%w: invalid date %q", ErrMalformedRecord, dateText)
	}

	s := domain.Session{
		ID:              id,
		Subject:         strings.TrimSpace(subject),
		DurationMinutes: minutes,
		Date:            date,
		StartTime:       optionalTime(fields, "startTime"),
		EndTime:         optionalTime(fields, "endTime"),
	}
	if notes, ok := fields.text("notes"); ok && notes != "" {
		s.Notes = &notes
	}
	return s, nil
}

// optionalTime reads a time-of-day field leniently: absent, null, or
// unparseable values all come back as nil.
func optionalTime(fields fieldMap, key string) *domain.TimeOfDay {
	text, ok := fields.text(key)
	if !ok {
		return nil
	}
	t, err := domain.ParseTimeOfDay(text)
	if err != nil {
		return nil
	}
	return &t
}

// --- field scanning ---------------------------------------------------------

type fieldKind uint8

const (
	fieldNull fieldKind = iota
	fieldString
	fieldLiteral
)

// fieldValue is one decoded key/value pair. For fieldString the text is
// already unescaped; for fieldLiteral it is the trimmed bare token.
type fieldValue struct {
	kind fieldKind
	text string
}

type fieldMap map[string]fieldValue

// text returns the field's textual value, reporting null fields as absent.
func (m fieldMap) text(key string) (string, bool) {
	v, ok := m[key]
	if !ok || v.kind == fieldNull {
		return "", false
	}
	return v.text, true
}

// scanFields tokenizes the body of one object literal (outer braces already
// stripped) into a field map in a single left-to-right pass. Each value is
// classified once by lookahead: null literal, quoted string, or bare
// numeric/boolean literal. Malformed tails stop the scan; whatever was
// read up to that point is returned and the caller's required-field checks
// decide whether that is fatal.
func scanFields(body string) fieldMap {
	fields := make(fieldMap)
	i := 0
	n := len(body)
	for {
		// Skip separators and whitespace before the next key.
		for i < n && (body[i] == ',' || isSpace(body[i])) {
			i++
		}
		if i >= n {
			return fields
		}

		var key string
		if body[i] == '"' {
			span, next, ok := scanQuoted(body, i+1)
			if !ok {
				return fields
			}
			key = unescapeString(span)
			i = next
		} else {
			colon := strings.IndexByte(body[i:], ':')
			if colon < 0 {
				return fields
			}
			key = strings.TrimSpace(body[i : i+colon])
			i += colon
		}

		for i < n && isSpace(body[i]) {
			i++
		}
		if i >= n || body[i] != ':' {
			return fields
		}
		i++
		for i < n && isSpace(body[i]) {
			i++
		}
		if i >= n {
			return fields
		}

		var v fieldValue
		switch {
		case strings.HasPrefix(body[i:], "null"):
			v = fieldValue{kind: fieldNull}
			i += len("null")
		case body[i] == '"':
			span, next, ok := scanQuoted(body, i+1)
			if !ok {
				return fields
			}
			v = fieldValue{kind: fieldString, text: unescapeString(span)}
			i = next
		default:
			end := i
			for end < n && body[end] != ',' {
				end++
			}
			v = fieldValue{kind: fieldLiteral, text: strings.TrimSpace(body[i:end])}
			i = end
		}

		// First occurrence of a key wins.
		if _, dup := fields[key]; !dup {
			fields[key] = v
		}
	}
}

// scanQuoted scans a quoted literal starting just after its opening quote.
// It returns the raw (still escaped) span, the index just past the closing
// quote, and whether a closing quote was found. A quote preceded by an odd
// run of backslashes is escaped and does not terminate the literal.
func scanQuoted(s string, start int) (span string, next int, ok bool) {
	escaped := false
	for i := start; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			return s[start:i], i + 1, true
		}
	}
	return "", 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
