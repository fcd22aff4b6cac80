package bise

import (
	"bytes"
	"strings"
	"testing"

	_ "embed"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/entry.html
var entryPage []byte

//go:embed testdata/entry_no_viewstate.html
var entryPageNoViewState []byte

//go:embed testdata/result_found.html
var resultFoundPage []byte

//go:embed testdata/result_not_found.html
var resultNotFoundPage []byte

func parseDoc(t testing.TB, contents string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func parseFixture(t testing.TB, contents []byte) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(contents))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExtractTokens(t *testing.T) {
	tokens, err := ExtractTokens(parseFixture(t, entryPage))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(tokens.ViewState, "/wEPDwUKMTY3NzY2NDY1Nw9k"))
	require.Equal(t, "A2C9B1F0", tokens.ViewStateGenerator)
	require.Equal(t, "/wEdAAR0kZ0w9cJ6Jt2rX0XQ3d7p+5vYc0lNQ2HsZ9k1W0b8bYw==", tokens.EventValidation)
}

func TestExtractTokensMissingViewState(t *testing.T) {
	_, err := ExtractTokens(parseFixture(t, entryPageNoViewState))
	require.ErrorIs(t, err, ErrTokenUnavailable)

	_, err = ExtractTokens(parseDoc(t, `<form><input type="hidden" id="__VIEWSTATE" value="" /></form>`))
	require.ErrorIs(t, err, ErrTokenUnavailable)

	_, err = ExtractTokens(parseDoc(t, `<form><input type="hidden" id="__VIEWSTATE" /></form>`))
	require.ErrorIs(t, err, ErrTokenUnavailable)
}

func TestExtractTokensOptionalFields(t *testing.T) {
	tokens, err := ExtractTokens(parseDoc(t, `<form>
		<input type="hidden" name="__VIEWSTATE" value="abc" />
		<input type="hidden" id="__EVENTVALIDATION" />
	</form>`))
	require.NoError(t, err)
	require.Equal(t, Tokens{ViewState: "abc"}, tokens)
}

func TestSubmissionForm(t *testing.T) {
	form := Submission{
		RollNumber:  "120166",
		Exam:        "72",
		SubmitLabel: " Get Result",
		Tokens: Tokens{
			ViewState:          "vs",
			ViewStateGenerator: "gen",
		},
	}.Form()

	require.Equal(t, "120166", form.Get(FIELD_ROLL_NUMBER))
	require.Equal(t, "72", form.Get(FIELD_EXAM))
	require.Equal(t, " Get Result", form.Get(FIELD_SUBMIT))
	require.Equal(t, "vs", form.Get(FIELD_VIEWSTATE))
	require.Equal(t, "gen", form.Get(FIELD_VIEWSTATE_GENERATOR))

	for _, field := range []string{FIELD_EVENT_VALIDATION, FIELD_EVENT_TARGET, FIELD_EVENT_ARGUMENT} {
		values, ok := form[field]
		require.True(t, ok, field)
		require.Equal(t, []string{""}, values, field)
	}
}

func TestParseResultFound(t *testing.T) {
	result, err := ParseResult(parseFixture(t, resultFoundPage), "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, Result{
		StudentName:  "HAMZA MUNIR",
		SubjectMarks: "85",
		Found:        true,
	}, result)

	result, err = ParseResult(parseFixture(t, resultFoundPage), "CHEMISTRY")
	require.NoError(t, err)
	require.Equal(t, "95", result.SubjectMarks)
}

func TestParseResultNotFound(t *testing.T) {
	result, err := ParseResult(parseFixture(t, resultNotFoundPage), "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, Result{
		StudentName:  NOT_AVAILABLE,
		SubjectMarks: NOT_AVAILABLE,
		Found:        false,
	}, result)
}

func TestParseResultSubjectMissing(t *testing.T) {
	result, err := ParseResult(parseFixture(t, resultFoundPage), "BIOLOGY")
	require.NoError(t, err)
	require.True(t, result.Found)
	require.Equal(t, "HAMZA MUNIR", result.StudentName)
	require.Equal(t, NOT_AVAILABLE, result.SubjectMarks)

	// matching is case-sensitive
	result, err = ParseResult(parseFixture(t, resultFoundPage), "Physics")
	require.NoError(t, err)
	require.Equal(t, NOT_AVAILABLE, result.SubjectMarks)
}

func TestParseResultFirstMatchWins(t *testing.T) {
	doc := parseDoc(t, `<form>
		<span id="ContentPlaceHolder1_lblNameValue">ALI</span>
		<table id="ContentPlaceHolder1_gvSubjects">
			<tr><th>Subject</th><th>Total</th></tr>
			<tr><td>PHYSICS (THEORY)</td><td>60</td></tr>
			<tr><td>PHYSICS (PRACTICAL)</td><td>25</td></tr>
		</table>
	</form>`)
	result, err := ParseResult(doc, "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, "60", result.SubjectMarks)
}

func TestParseResultOpaqueMarks(t *testing.T) {
	doc := parseDoc(t, `<form>
		<span id="ContentPlaceHolder1_lblNameValue">ALI</span>
		<table id="ContentPlaceHolder1_gvSubjects">
			<tr><td>1</td><td>PHYSICS</td><td> ABSENT </td></tr>
			<tr><td>2</td><td>CHEMISTRY</td><td></td></tr>
		</table>
	</form>`)
	result, err := ParseResult(doc, "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, "ABSENT", result.SubjectMarks)

	result, err = ParseResult(doc, "CHEMISTRY")
	require.NoError(t, err)
	require.Equal(t, NOT_AVAILABLE, result.SubjectMarks)
}

func TestParseResultNoTable(t *testing.T) {
	doc := parseDoc(t, `<form><span id="ContentPlaceHolder1_lblNameValue">ALI</span></form>`)
	result, err := ParseResult(doc, "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, Result{StudentName: "ALI", SubjectMarks: NOT_AVAILABLE, Found: true}, result)
}

func TestParseResultMalformed(t *testing.T) {
	_, err := ParseResult(parseDoc(t, `<html><body><h1>502 Bad Gateway</h1></body></html>`), "PHYSICS")
	require.ErrorIs(t, err, ErrMalformedPage)
}

func TestExtractTokensMissingVsEmpty(t *testing.T) {
	_, err := ExtractTokens(parseDoc(t, `<form><input type="hidden" id="__VIEWSTATEGENERATOR" value="A2C9B1F0" /></form>`))
	require.ErrorIs(t, err, ErrTokenUnavailable)
	require.ErrorContains(t, err, "missing")

	_, err = ExtractTokens(parseDoc(t, `<form><input type="hidden" name="__VIEWSTATE" value="" /></form>`))
	require.ErrorIs(t, err, ErrTokenUnavailable)
	require.ErrorContains(t, err, "empty")
}

func TestParseResultKeepsInnerText(t *testing.T) {
	doc := parseDoc(t, "<form>"+
		"<span id=\"ContentPlaceHolder1_lblNameValue\">\n  MUHAMMAD   ALI\tKHAN \n</span>"+
		"<table id=\"ContentPlaceHolder1_gvSubjects\">"+
		"<tr><td>1</td><td>PHYSICS</td><td> 85  (A+)\u200b</td></tr>"+
		"</table></form>")
	result, err := ParseResult(doc, "PHYSICS")
	require.NoError(t, err)
	require.Equal(t, "MUHAMMAD   ALI\tKHAN", result.StudentName)
	require.Equal(t, "85  (A+)\u200b", result.SubjectMarks)
}
