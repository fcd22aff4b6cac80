package results

import (
	"context"
	"fmt"
	"resultfetcher/lib/configutil"
)

type TableEntry struct {
	RollNumber  string `json:"roll_number"`
	StudentName string `json:"student_name"`
	Marks       string `json:"marks"`
}

// TableResolver resolves roll numbers from a fixed in-memory table,
// roll numbers that aren't in the table are not found.
type TableResolver struct {
	entries map[string]TableEntry
}

// NewTableResolver builds the table, if a roll number appears more than once
// the first entry wins.
func NewTableResolver(entries []TableEntry) TableResolver {
	table := make(map[string]TableEntry, len(entries))
	for _, e := range entries {
		if _, exists := table[e.RollNumber]; exists {
			continue
		}
		table[e.RollNumber] = e
	}
	return TableResolver{entries: table}
}

type tableFile struct {
	Records []TableEntry `json:"records"`
}

// LoadTableEntries reads a json5 file of the form `{records: [{roll_number, student_name, marks}]}`.
func LoadTableEntries(path string) ([]TableEntry, error) {
	file, err := configutil.ReadConfig[tableFile](path)
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	return file.Records, nil
}

func LoadTableResolver(path string) (TableResolver, error) {
	entries, err := LoadTableEntries(path)
	if err != nil {
		return TableResolver{}, err
	}
	return NewTableResolver(entries), nil
}

func (r TableResolver) Len() int {
	return len(r.entries)
}

func (r TableResolver) Resolve(ctx context.Context, rollNumber string) (Lookup, error) {
	if err := ctx.Err(); err != nil {
		return Lookup{}, err
	}

	entry, ok := r.entries[rollNumber]
	if !ok {
		return Lookup{
			StudentName:  NOT_AVAILABLE,
			SubjectMarks: NOT_AVAILABLE,
			Found:        false,
		}, nil
	}

	marks := entry.Marks
	if marks == "" {
		marks = NOT_AVAILABLE
	}
	return Lookup{
		StudentName:  entry.StudentName,
		SubjectMarks: marks,
		Found:        true,
	}, nil
}
