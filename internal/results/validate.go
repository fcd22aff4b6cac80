package results

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

const (
	MIN_ROLL_NUMBER_LENGTH = 5
	MAX_ROLL_NUMBER_LENGTH = 7
)

var (
	ErrRollNumberNotNumeric = errors.New("roll number is not numeric")
	ErrRollNumberLength     = fmt.Errorf(
		"roll number must be %d-%d digits",
		MIN_ROLL_NUMBER_LENGTH, MAX_ROLL_NUMBER_LENGTH,
	)
)

// ValidateRollNumber checks the shape of a roll number: only the ascii digits 0-9,
// between MIN_ROLL_NUMBER_LENGTH and MAX_ROLL_NUMBER_LENGTH of them.
// Whitespace, signs, exponents and hex prefixes are all rejected.
func ValidateRollNumber(rollNumber string) error {
	for _, r := range rollNumber {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q", ErrRollNumberNotNumeric, rollNumber)
		}
	}
	length := utf8.RuneCountInString(rollNumber)
	if length < MIN_ROLL_NUMBER_LENGTH || length > MAX_ROLL_NUMBER_LENGTH {
		return fmt.Errorf("%w: %q has %d", ErrRollNumberLength, rollNumber, length)
	}
	return nil
}
