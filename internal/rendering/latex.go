package rendering

import (
	"strings"
	"sync"
	"text/template"
)

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`$`, `\$`,
	`&`, `\&`,
	`%`, `\%`,
	`#`, `\#`,
	`^`, `\textasciicircum{}`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
)

// EscapeLaTeX escapes the characters LaTeX treats specially: \ { } $ & % # ^ _ ~
func EscapeLaTeX(text string) string {
	return latexEscaper.Replace(text)
}

var (
	latexOnce sync.Once
	latexTmpl *template.Template
	latexErr  error
)

func latexTemplate() (*template.Template, error) {
	latexOnce.Do(func() {
		// LaTeX is brace-heavy, so actions use << >>.
		latexTmpl, latexErr = template.New("resume.tex.tmpl").
			Delims("<<", ">>").
			Funcs(template.FuncMap{
				"escape":  EscapeLaTeX,
				"spans":   latexSpans,
				"contact": latexContact,
				"bullets": bulletsOf,
			}).
			ParseFS(templateFS, "templates/resume.tex.tmpl")
	})
	return latexTmpl, latexErr
}

// LaTeX prints the layout as a standalone LaTeX source file.
func LaTeX(l Layout) (string, error) {
	tmpl, err := latexTemplate()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse LaTeX template", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, l); err != nil {
		return "", &TemplateError{Message: "failed to execute LaTeX template", Cause: err}
	}
	return out.String(), nil
}

func latexSpans(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		text := EscapeLaTeX(s.Text)
		if s.Bold {
			text = `\textbf{` + text + `}`
		}
		if s.Italic {
			text = `\textit{` + text + `}`
		}
		if s.Link != "" {
			text = `\href{` + escapeURL(s.Link) + `}{` + text + `}`
		}
		b.WriteString(text)
	}
	return b.String()
}

func latexContact(items []string) string {
	escaped := make([]string, len(items))
	for i, it := range items {
		escaped[i] = EscapeLaTeX(it)
	}
	return strings.Join(escaped, ` $|$ `)
}

// escapeURL escapes the characters hyperref cannot take verbatim in \href.
func escapeURL(link string) string {
	return strings.NewReplacer(`\`, `/`, `%`, `\%`, `#`, `\#`, `{`, `\%7B`, `}`, `\%7D`).Replace(link)
}
