package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		row    int
		letter int
		ok     bool
	}{
		{"1A", "1A", 1, 0, true},
		{"3b", "3B", 3, 1, true},
		{" 12d ", "12D", 12, 3, true},
		{"999Z", "999Z", 999, 25, true},
		{"", "", 0, 0, false},
		{"A1", "", 0, 0, false},
		{"0A", "", 0, 0, false},
		{"12", "", 0, 0, false},
		{"1AA", "", 0, 0, false},
		{"1000A", "", 0, 0, false},
		{"-1A", "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			normalized, row, letter, err := Parse(tt.input)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, normalized)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.letter, letter)
		})
	}
}

func TestParse_EmptyError(t *testing.T) {
	_, _, _, err := Parse("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, _, _, err = Parse("seat one")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLayoutValidate(t *testing.T) {
	// 40 seats, 4 per row: rows 1-10, letters A-D.
	layout := NewLayout(40, 4)

	normalized, err := layout.Validate("10d")
	require.NoError(t, err)
	assert.Equal(t, "10D", normalized)

	_, err = layout.Validate("10E")
	assert.Error(t, err)

	_, err = layout.Validate("11A")
	assert.Error(t, err)
}

func TestLayoutValidate_PartialLastRow(t *testing.T) {
	// 42 seats, 4 per row: row 11 only has A and B.
	layout := NewLayout(42, 4)

	_, err := layout.Validate("11B")
	assert.NoError(t, err)

	_, err = layout.Validate("11C")
	assert.Error(t, err)
}

func TestNewLayout_DefaultRowWidth(t *testing.T) {
	layout := NewLayout(40, 0)
	assert.Equal(t, DefaultSeatsPerRow, layout.SeatsPerRow)
}
