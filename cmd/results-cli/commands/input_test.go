package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"resultfetcher/internal/results"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRollNumbers(t *testing.T) {
	out, err := parseRollNumbers(strings.NewReader("120166\n  120167 \n\n\t401235\r\n 12345 67890 "))
	require.NoError(t, err)
	require.Equal(t, []string{"120166", "120167", "401235", "12345", "67890"}, out)

	out, err = parseRollNumbers(strings.NewReader(" \n\n "))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCollectRollNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rolls.txt")
	err := os.WriteFile(path, []byte("11111\n22222\n"), 0600)
	require.NoError(t, err)

	stdin := strings.NewReader("33333")

	out, err := collectRollNumbers([]string{"44444 55555", "66666"}, path, stdin)
	require.NoError(t, err)
	require.Equal(t, []string{"44444", "55555", "66666"}, out)

	out, err = collectRollNumbers(nil, path, stdin)
	require.NoError(t, err)
	require.Equal(t, []string{"11111", "22222"}, out)

	out, err = collectRollNumbers(nil, "", stdin)
	require.NoError(t, err)
	require.Equal(t, []string{"33333"}, out)

	_, err = collectRollNumbers(nil, "", strings.NewReader("\n\n"))
	require.ErrorIs(t, err, errNoRollNumbers)

	_, err = collectRollNumbers(nil, filepath.Join(t.TempDir(), "missing.txt"), stdin)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilterMinMarks(t *testing.T) {
	records := []results.Record{
		{RollNumber: "1", SubjectMarks: "85", Status: results.STATUS_SUCCESS},
		{RollNumber: "2", SubjectMarks: "32", Status: results.STATUS_SUCCESS},
		{RollNumber: "3", SubjectMarks: "ABSENT", Status: results.STATUS_SUCCESS},
		{RollNumber: "4", SubjectMarks: results.NOT_AVAILABLE, Status: results.STATUS_NOT_FOUND},
		{RollNumber: "5", SubjectMarks: " 33 ", Status: results.STATUS_SUCCESS},
	}

	out := filterMinMarks(records, 33)
	require.Len(t, out, 2)
	require.Equal(t, "1", out[0].RollNumber)
	require.Equal(t, "5", out[1].RollNumber)

	require.Empty(t, filterMinMarks(nil, 0))
}

func TestRender(t *testing.T) {
	records := []results.Record{
		{RollNumber: "120166", StudentName: "HAMZA MUNIR", SubjectMarks: "85", Status: results.STATUS_SUCCESS},
		{RollNumber: "abc", StudentName: results.NOT_AVAILABLE, SubjectMarks: results.NOT_AVAILABLE, Status: results.STATUS_ERROR},
	}

	buff := &bytes.Buffer{}
	err := render(buff, FORMAT_JSON, "PHYSICS", records)
	require.NoError(t, err)
	require.Contains(t, buff.String(), `"student_name": "HAMZA MUNIR"`)
	require.Contains(t, buff.String(), `"status": "Error"`)

	buff.Reset()
	err = render(buff, FORMAT_TABLE, "PHYSICS", records)
	require.NoError(t, err)
	require.Contains(t, buff.String(), "HAMZA MUNIR")
	// go-pretty upper-cases footers
	require.Contains(t, strings.ToLower(buff.String()), "1 found")

	err = render(buff, "xml", "PHYSICS", records)
	require.Error(t, err)
}
