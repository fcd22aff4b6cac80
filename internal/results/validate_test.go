package results

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRollNumber(t *testing.T) {
	testCases := []struct {
		rollNumber string
		expected   error
	}{
		{rollNumber: "12345", expected: nil},
		{rollNumber: "120166", expected: nil},
		{rollNumber: "1234567", expected: nil},
		{rollNumber: "00000", expected: nil},
		{rollNumber: "1234", expected: ErrRollNumberLength},
		{rollNumber: "12345678", expected: ErrRollNumberLength},
		{rollNumber: "", expected: ErrRollNumberLength},
		{rollNumber: "abc", expected: ErrRollNumberNotNumeric},
		{rollNumber: "12a456", expected: ErrRollNumberNotNumeric},
		{rollNumber: " 12345", expected: ErrRollNumberNotNumeric},
		{rollNumber: "-12345", expected: ErrRollNumberNotNumeric},
		{rollNumber: "1e5000", expected: ErrRollNumberNotNumeric},
		{rollNumber: "0x1F12", expected: ErrRollNumberNotNumeric},
		{rollNumber: "12.345", expected: ErrRollNumberNotNumeric},
		{rollNumber: "١٢٣٤٥", expected: ErrRollNumberNotNumeric},
	}

	for _, test := range testCases {
		err := ValidateRollNumber(test.rollNumber)
		if test.expected == nil {
			require.NoError(t, err, test.rollNumber)
			continue
		}
		require.ErrorIs(t, err, test.expected, test.rollNumber)
	}
}
