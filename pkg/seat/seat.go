// Package seat parses and validates seat identifiers of the form "3B":
// a 1-based row number followed by a seat letter within the row.
package seat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrEmpty indicates an empty seat identifier
	ErrEmpty = errors.New("seat identifier cannot be empty")

	// ErrMalformed indicates an identifier not matching <row><letter>
	ErrMalformed = errors.New("seat identifier must be a row number followed by a seat letter, e.g. 3B")
)

// DefaultSeatsPerRow is the row width used when no layout is configured
const DefaultSeatsPerRow = 4

// seatRegex matches a row number and a single seat letter
var seatRegex = regexp.MustCompile(`^([1-9][0-9]{0,2})([A-Z])$`)

// Layout describes a bus's seat numbering scheme: rows of equal width,
// lettered A upward within each row.
type Layout struct {
	SeatsPerRow int
	TotalSeats  int
}

// NewLayout builds a layout for a bus capacity. A non-positive seatsPerRow
// falls back to the default width.
func NewLayout(totalSeats, seatsPerRow int) Layout {
	if seatsPerRow <= 0 {
		seatsPerRow = DefaultSeatsPerRow
	}
	return Layout{SeatsPerRow: seatsPerRow, TotalSeats: totalSeats}
}

// Parse validates the syntax of a seat identifier and returns its
// normalized form plus row and letter index. Identifiers are
// case-insensitive on input and normalized to upper case.
func Parse(id string) (normalized string, row int, letter int, err error) {
	if id == "" {
		return "", 0, 0, ErrEmpty
	}

	upper := strings.ToUpper(strings.TrimSpace(id))
	m := seatRegex.FindStringSubmatch(upper)
	if m == nil {
		return "", 0, 0, ErrMalformed
	}

	row, err = strconv.Atoi(m[1])
	if err != nil {
		return "", 0, 0, ErrMalformed
	}
	letter = int(m[2][0] - 'A')

	return upper, row, letter, nil
}

// Validate checks a seat identifier against the layout and returns its
// normalized form. The seat must be syntactically valid, within the row
// width, and within the bus's total seat count.
func (l Layout) Validate(id string) (string, error) {
	normalized, row, letter, err := Parse(id)
	if err != nil {
		return "", err
	}

	if letter >= l.SeatsPerRow {
		return "", fmt.Errorf("seat %s: letter %c is outside the %d-seat row", normalized, 'A'+byte(letter), l.SeatsPerRow)
	}

	ordinal := (row-1)*l.SeatsPerRow + letter
	if ordinal >= l.TotalSeats {
		return "", fmt.Errorf("seat %s is beyond the bus capacity of %d seats", normalized, l.TotalSeats)
	}

	return normalized, nil
}
