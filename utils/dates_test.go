package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in string
		ok bool
	}{
		{"2025-06-10", true},
		{" 2025-06-10 ", true},
		{"2025-06-10T23:30:00+07:00", true},
		{"2025-06-10T01:00:00Z", true},
		{"10/06/2025", false},
		{"2025-02-30", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, want.Equal(got), got)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2025-06-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-06-10", FormatDate(*got))

	_, err = ParseOptionalDate("tomorrow")
	require.ErrorIs(t, err, ErrInvalidDate)
}
