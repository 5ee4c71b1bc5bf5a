package codec

import (
	"errors"

	"github.com/jonathan/resume-editor/internal/resume"
)

// LiveEditor keeps a text view and the in-memory document in step. Text edits
// that parse replace the document; text that fails to parse is kept as typed
// while the last good document stays current.
type LiveEditor struct {
	text string
	doc  resume.Document
	err  *ParseError
}

// NewLiveEditor starts a live session from doc.
func NewLiveEditor(doc resume.Document) (*LiveEditor, error) {
	l := &LiveEditor{}
	if err := l.SetDocument(doc); err != nil {
		return nil, err
	}
	return l, nil
}

// SetText records text typed by the user and reports whether the document was
// replaced.
func (l *LiveEditor) SetText(text string) bool {
	l.text = text
	doc, err := Deserialize([]byte(text))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			l.err = pe
		} else {
			l.err = &ParseError{Message: err.Error(), Cause: err}
		}
		return false
	}
	l.doc = doc
	l.err = nil
	return true
}

// SetDocument replaces the document after a form edit and regenerates the text.
func (l *LiveEditor) SetDocument(doc resume.Document) error {
	text, err := Serialize(doc)
	if err != nil {
		return err
	}
	l.doc = resume.Normalize(doc)
	l.text = string(text)
	l.err = nil
	return nil
}

// Text returns the text as last typed or generated.
func (l *LiveEditor) Text() string {
	return l.text
}

// Document returns the last document that parsed successfully.
func (l *LiveEditor) Document() resume.Document {
	return l.doc
}

// Err returns the parse error for the current text, or nil.
func (l *LiveEditor) Err() *ParseError {
	return l.err
}
