package bise

import (
	"errors"
	"net/url"
)

// form field names of the results page, these are generated by ASP.NET WebForms
// and change if the page's control tree changes.
const (
	FIELD_VIEWSTATE           = "__VIEWSTATE"
	FIELD_VIEWSTATE_GENERATOR = "__VIEWSTATEGENERATOR"
	FIELD_EVENT_VALIDATION    = "__EVENTVALIDATION"
	FIELD_EVENT_TARGET        = "__EVENTTARGET"
	FIELD_EVENT_ARGUMENT      = "__EVENTARGUMENT"

	FIELD_EXAM        = "ctl00$ContentPlaceHolder1$ddlExam"
	FIELD_ROLL_NUMBER = "ctl00$ContentPlaceHolder1$txtRollNo"
	FIELD_SUBMIT      = "ctl00$ContentPlaceHolder1$btnResult"
)

// element ids on the results page
const (
	SELECTOR_STUDENT_NAME  = "#ContentPlaceHolder1_lblNameValue"
	SELECTOR_SUBJECT_TABLE = "#ContentPlaceHolder1_gvSubjects"
)

const NOT_AVAILABLE = "N/A"

var (
	// ErrTokenUnavailable means the entry page did not carry a __VIEWSTATE,
	// no submission should be attempted.
	ErrTokenUnavailable = errors.New("session token unavailable")
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrMalformedPage means the response is not a page of the results form at all.
	ErrMalformedPage = errors.New("malformed results page")
)

// Tokens are the hidden anti-forgery fields of a single rendering of the results form.
// They are only valid for the submission directly following that rendering.
type Tokens struct {
	ViewState          string
	ViewStateGenerator string
	EventValidation    string
}

// Fields returns the tokens keyed by their form field name.
func (t Tokens) Fields() map[string]string {
	return map[string]string{
		FIELD_VIEWSTATE:           t.ViewState,
		FIELD_VIEWSTATE_GENERATOR: t.ViewStateGenerator,
		FIELD_EVENT_VALIDATION:    t.EventValidation,
	}
}

// Submission is everything that goes into the POST of the results form.
type Submission struct {
	RollNumber  string
	Exam        string
	SubmitLabel string
	Tokens      Tokens
}

// Form encodes the submission as the form body the portal expects, the empty
// event target/argument fields are required even though this form doesn't use them.
func (s Submission) Form() url.Values {
	form := url.Values{}
	form.Set(FIELD_EXAM, s.Exam)
	form.Set(FIELD_ROLL_NUMBER, s.RollNumber)
	form.Set(FIELD_SUBMIT, s.SubmitLabel)
	for key, value := range s.Tokens.Fields() {
		form.Set(key, value)
	}
	form.Set(FIELD_EVENT_TARGET, "")
	form.Set(FIELD_EVENT_ARGUMENT, "")
	return form
}

// Result is what could be read off of a results page.
type Result struct {
	StudentName  string
	SubjectMarks string
	// Found is false when the portal has no student for the roll number,
	// StudentName and SubjectMarks are then both NOT_AVAILABLE.
	Found bool
}
