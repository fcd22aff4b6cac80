package bise

import (
	"resultfetcher/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ParseResult reads the student name and the marks of `subject` off of a results page.
//
// The marks are the last cell of the first row of the subject table whose text contains
// `subject` (case-sensitive). If the subject were ever split across two rows
// (ex. theory/practical) the first one wins.
func ParseResult(doc *goquery.Document, subject string) (Result, error) {
	nameSel := doc.Find(SELECTOR_STUDENT_NAME)
	if nameSel.Length() == 0 && doc.Find("form").Length() == 0 {
		return Result{}, ErrMalformedPage
	}

	name := htmlutil.SelectionText(nameSel.First())
	if name == "" {
		return Result{
			StudentName:  NOT_AVAILABLE,
			SubjectMarks: NOT_AVAILABLE,
			Found:        false,
		}, nil
	}

	marks := NOT_AVAILABLE
	doc.Find(SELECTOR_SUBJECT_TABLE).First().Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if !strings.Contains(row.Text(), subject) {
			return true
		}
		cell := htmlutil.SelectionText(row.Find("td").Last())
		if cell != "" {
			marks = cell
		}
		return false
	})

	return Result{
		StudentName:  name,
		SubjectMarks: marks,
		Found:        true,
	}, nil
}
