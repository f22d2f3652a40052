package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dnwood/study-time-tracker/internal/domain"
)

func TestParseTimeOfDay_OK(t *testing.T) {
	cases := []struct {
		in   string
		want domain.TimeOfDay
	}{
		{"09:30", domain.TimeOfDay{Hour: 9, Minute: 30}},
		{"09:30:15", domain.TimeOfDay{Hour: 9, Minute: 30, Second: 15}},
		{"00:00:00", domain.TimeOfDay{}},
		{"23:59:59", domain.TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
	}
	for _, c := range cases {
		got, err := domain.ParseTimeOfDay(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestParseTimeOfDay_Invalid(t *testing.T) {
	for _, in := range []string{
		"", "9:30", "09", "09:30:15:00", "24:00:00", "12:60:00",
		"12:00:60", "ab:cd:ef", "12:-1:00", "noon",
	} {
		_, err := domain.ParseTimeOfDay(in)
		assert.Error(t, err, in)
	}
}

func TestTimeOfDay_String(t *testing.T) {
	assert.Equal(t, "09:05:00", domain.TimeOfDay{Hour: 9, Minute: 5}.String())
	assert.Equal(t, "23:59:59", domain.TimeOfDay{Hour: 23, Minute: 59, Second: 59}.String())
}

func TestTimeOfDay_RoundTrip(t *testing.T) {
	orig := domain.TimeOfDay{Hour: 14, Minute: 45, Second: 30}

	parsed, err := domain.ParseTimeOfDay(orig.String())

	require.NoError(t, err)
	assert.Equal(t, orig, parsed)
}
