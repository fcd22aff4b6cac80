package bise

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

func hiddenField(doc *goquery.Document, name string) (string, bool) {
	sel := doc.Find(fmt.Sprintf("input#%s", name))
	if sel.Length() == 0 {
		sel = doc.Find(fmt.Sprintf("input[name=%s]", name))
	}
	if sel.Length() == 0 {
		return "", false
	}
	return sel.First().AttrOr("value", ""), true
}

// ExtractTokens reads the session tokens off of the entry page.
//
// __VIEWSTATE is mandatory, the generator and event validation fields are
// omitted by some states of the page and default to empty.
func ExtractTokens(doc *goquery.Document) (Tokens, error) {
	viewState, ok := hiddenField(doc, FIELD_VIEWSTATE)
	if !ok {
		return Tokens{}, fmt.Errorf("%w: %s is missing", ErrTokenUnavailable, FIELD_VIEWSTATE)
	}
	if viewState == "" {
		return Tokens{}, fmt.Errorf("%w: %s is empty", ErrTokenUnavailable, FIELD_VIEWSTATE)
	}
	generator, _ := hiddenField(doc, FIELD_VIEWSTATE_GENERATOR)
	validation, _ := hiddenField(doc, FIELD_EVENT_VALIDATION)

	return Tokens{
		ViewState:          viewState,
		ViewStateGenerator: generator,
		EventValidation:    validation,
	}, nil
}
