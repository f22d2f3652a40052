package codec

import (
	"strings"
	"testing"
	"time"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

func strptr(s string) *string { return &s }

func todptr(h, m, sec int) *domain.TimeOfDay {
	return &domain.TimeOfDay{Hour: h, Minute: m, Second: sec}
}

func fullSession() domain.Session {
	return domain.Session{
		ID:              "a1b2c3",
		Subject:         "Algorithms",
		DurationMinutes: 90,
		Date:            time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC),
		StartTime:       todptr(9, 30, 0),
		EndTime:         todptr(11, 0, 0),
		Notes:           strptr("reviewed graphs"),
	}
}

func TestEncodeSession_CanonicalOrder(t *testing.T) {
	got := EncodeSession(fullSession())

	assert.Equal(t,
		`{"id":"a1b2c3","subject":"Algorithms","durationMinutes":90,"date":"2025-10-04",`+
			`"startTime":"09:30:00","endTime":"11:00:00","notes":"reviewed graphs"}`,
		got)
}

func TestEncodeSession_ExplicitNulls(t *testing.T) {
	s := fullSession()
	s.StartTime = nil
	s.EndTime = nil
	s.Notes = nil

	got := EncodeSession(s)

	assert.Contains(t, got, `"startTime":null`)
	assert.Contains(t, got, `"endTime":null`)
	assert.Contains(t, got, `"notes":null`)
}

// TestEncodeSession_ValidJSON cross-checks the hand-written encoder against
// an independent JSON parser: whatever we emit must be readable by any
// standards-compliant consumer (the web frontend reads this format).
func TestEncodeSession_ValidJSON(t *testing.T) {
	s := fullSession()
	s.Notes = strptr("tricky \"notes\", with\nnewline and \\backslash\\")

	j, err := simplejson.NewJson([]byte(EncodeSession(s)))

	require.NoError(t, err)
	assert.Equal(t, "a1b2c3", j.Get("id").MustString())
	assert.Equal(t, "Algorithms", j.Get("subject").MustString())
	assert.Equal(t, 90, j.Get("durationMinutes").MustInt())
	assert.Equal(t, "2025-10-04", j.Get("date").MustString())
	assert.Equal(t, "09:30:00", j.Get("startTime").MustString())
	assert.Equal(t, "tricky \"notes\", with\nnewline and \\backslash\\", j.Get("notes").MustString())
}

func TestDecodeSession_RoundTrip(t *testing.T) {
	cases := map[string]domain.Session{
		"full": fullSession(),
		"required only": {
			ID:              "x",
			Subject:         "Go",
			DurationMinutes: 1,
			Date:            time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		"adversarial notes": {
			ID:              "n",
			Subject:         "Writing",
			DurationMinutes: 30,
			Date:            time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
			Notes:           strptr("say \"hi\", bye\\ {mid, brace}\nsecond\tline"),
		},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeSession(EncodeSession(s))
			require.NoError(t, err)
			assert.Equal(t, s, got)
		})
	}
}

func TestDecodeSession_FieldOrderIndependent(t *testing.T) {
	text := `{"notes":null,"date":"2025-10-04","subject":"Math","endTime":null,` +
		`"durationMinutes":45,"startTime":null,"id":"abc"}`

	got, err := DecodeSession(text)

	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
	assert.Equal(t, "Math", got.Subject)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, time.Date(2025, 10, 4, 0, 0, 0, 0, time.UTC), got.Date)
}

func TestDecodeSession_IgnoresUnknownKeys(t *testing.T) {
	text := `{"id":"abc","subject":"Math","extra":"future field","durationMinutes":45,` +
		`"date":"2025-10-04","rating":5,"startTime":null,"endTime":null,"notes":null}`

	got, err := DecodeSession(text)

	require.NoError(t, err)
	assert.Equal(t, "abc", got.ID)
}

func TestDecodeSession_WhitespaceTolerant(t *testing.T) {
	text := "  {\n  \"id\" : \"abc\" ,\n  \"subject\" : \"Math\" ,\n" +
		"  \"durationMinutes\" : 45 ,\n  \"date\" : \"2025-10-04\"\n}  "

	got, err := DecodeSession(text)

	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.Equal(t, "Math", got.Subject)
}

func TestDecodeSession_FirstOccurrenceWins(t *testing.T) {
	text := `{"id":"first","id":"second","subject":"Go","durationMinutes":10,"date":"2025-01-01"}`

	got, err := DecodeSession(text)

	require.NoError(t, err)
	assert.Equal(t, "first", got.ID)
}

func TestDecodeSession_MissingRequiredField(t *testing.T) {
	cases := map[string]string{
		"no id":       `{"subject":"Go","durationMinutes":10,"date":"2025-01-01"}`,
		"no subject":  `{"id":"a","durationMinutes":10,"date":"2025-01-01"}`,
		"no duration": `{"id":"a","subject":"Go","date":"2025-01-01"}`,
		"no date":     `{"id":"a","subject":"Go","durationMinutes":10}`,
		"null id":     `{"id":null,"subject":"Go","durationMinutes":10,"date":"2025-01-01"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSession(text)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestDecodeSession_InvalidRequiredValues(t *testing.T) {
	cases := map[string]string{
		"non-numeric duration": `{"id":"a","subject":"Go","durationMinutes":"lots","date":"2025-01-01"}`,
		"zero duration":        `{"id":"a","subject":"Go","durationMinutes":0,"date":"2025-01-01"}`,
		"negative duration":    `{"id":"a","subject":"Go","durationMinutes":-5,"date":"2025-01-01"}`,
		"bad date":             `{"id":"a","subject":"Go","durationMinutes":10,"date":"yesterday"}`,
		"impossible date":      `{"id":"a","subject":"Go","durationMinutes":10,"date":"2025-13-45"}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSession(text)
			assert.ErrorIs(t, err, ErrMalformedRecord)
		})
	}
}

func TestDecodeSession_InvalidOptionalTimeIsAbsent(t *testing.T) {
	text := `{"id":"a","subject":"Go","durationMinutes":10,"date":"2025-01-01",` +
		`"startTime":"25:99:00","endTime":"not a time"}`

	got, err := DecodeSession(text)

	require.NoError(t, err)
	assert.Nil(t, got.StartTime)
	assert.Nil(t, got.EndTime)
}

func TestDecodeSession_NotObjectLiteral(t *testing.T) {
	for _, text := range []string{"", "   ", "not json", `["id"]`, `{"id":"a"`} {
		_, err := DecodeSession(text)
		assert.ErrorIs(t, err, ErrMalformedRecord, "%q", text)
	}
}

func TestDecodeSession_UnterminatedString(t *testing.T) {
	// The scan stops at the unterminated value; subject is never established.
	_, err := DecodeSession(`{"id":"a","subject":"Go with no closing quote}`)

	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestDecodeSession_NotesWithEscapedQuoteBeforeComma(t *testing.T) {
	s := domain.Session{
		ID:              "q",
		Subject:         "Reading",
		DurationMinutes: 20,
		Date:            time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Notes:           strptr(`ends with backslash-quote: \" done`),
	}

	encoded := EncodeSession(s)
	got, err := DecodeSession(encoded)

	require.NoError(t, err)
	require.NotNil(t, got.Notes)
	assert.Equal(t, *s.Notes, *got.Notes)
	// Sanity: the escaped form really does contain an odd backslash run
	// before a quote inside the value.
	assert.True(t, strings.Contains(encoded, `\\\"`))
}
