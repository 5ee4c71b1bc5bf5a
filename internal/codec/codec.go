// Package codec converts resume documents to and from their human-editable YAML form.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/jonathan/resume-editor/internal/resume"
	"gopkg.in/yaml.v3"
)

// ExportFilename is the fixed name used when the document is downloaded.
const ExportFilename = "resume.yaml"

// ContentType is the MIME type of the serialized form.
const ContentType = "application/yaml"

// ParseError reports text that could not be read as a resume document.
type ParseError struct {
	Message string
	Line    int // 1-based; 0 when unknown
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Serialize renders d as block-style YAML with keys in schema order and no
// line wrapping.
func Serialize(d resume.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(resume.Normalize(d)); err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode resume: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize parses YAML text into a normalized document. Empty input yields
// the default document. Sections missing from the text take their defaults.
func Deserialize(text []byte) (resume.Document, error) {
	var d resume.Document
	dec := yaml.NewDecoder(bytes.NewReader(text))
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return resume.New(), nil
		}
		return resume.Document{}, newParseError(err)
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return resume.Document{}, &ParseError{Message: "expected a single document"}
	}

	return resume.Normalize(d), nil
}

var lineRe = regexp.MustCompile(`line (\d+)`)

func newParseError(err error) *ParseError {
	pe := &ParseError{Message: err.Error(), Cause: err}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		pe.Message = typeErr.Errors[0]
	}
	if m := lineRe.FindStringSubmatch(pe.Message); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
