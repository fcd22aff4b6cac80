package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"resultfetcher/internal/results"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	FORMAT_TABLE = "table"
	FORMAT_JSON  = "json"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func render(out io.Writer, format, subject string, records []results.Record) error {
	switch format {
	case FORMAT_JSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case FORMAT_TABLE:
		t := newTable(out)
		t.AppendHeader(table.Row{"Roll No.", "Name", subject, "Status"})
		counts := map[results.Status]int{}
		for _, r := range records {
			t.AppendRow(table.Row{r.RollNumber, r.StudentName, r.SubjectMarks, r.Status})
			counts[r.Status]++
		}
		t.AppendFooter(table.Row{
			"", "",
			fmt.Sprintf("%d found", counts[results.STATUS_SUCCESS]),
			fmt.Sprintf("%d not found, %d errors", counts[results.STATUS_NOT_FOUND], counts[results.STATUS_ERROR]),
		})
		t.Render()
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
