package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	htmlOnce sync.Once
	htmlTmpl *template.Template
	htmlErr  error
)

func htmlTemplate() (*template.Template, error) {
	htmlOnce.Do(func() {
		htmlTmpl, htmlErr = template.New("resume.html.tmpl").Funcs(template.FuncMap{
			"span":    htmlSpan,
			"bullets": bulletsOf,
		}).ParseFS(templateFS, "templates/resume.html.tmpl")
	})
	return htmlTmpl, htmlErr
}

// HTML prints the layout as a standalone letter-size page suitable for
// previewing or printing to PDF.
func HTML(l Layout) (string, error) {
	tmpl, err := htmlTemplate()
	if err != nil {
		return "", &TemplateError{Message: "failed to parse HTML template", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, l); err != nil {
		return "", &TemplateError{Message: "failed to execute HTML template", Cause: err}
	}
	return out.String(), nil
}

func htmlSpan(s Span) template.HTML {
	text := template.HTMLEscapeString(s.Text)
	if s.Bold {
		text = "<strong>" + text + "</strong>"
	}
	if s.Italic {
		text = "<em>" + text + "</em>"
	}
	if s.Link != "" {
		text = `<a href="` + template.HTMLEscapeString(safeURL(s.Link)) + `">` + text + "</a>"
	}
	return template.HTML(text)
}

// safeURL drops links whose scheme could run script in the preview.
func safeURL(link string) string {
	lower := strings.ToLower(strings.TrimSpace(link))
	if i := strings.IndexByte(lower, ':'); i >= 0 {
		switch lower[:i] {
		case "http", "https", "mailto":
		default:
			if !strings.ContainsAny(lower[:i], "/?#") {
				return "#"
			}
		}
	}
	return link
}

func bulletsOf(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if l.Bullet {
			out = append(out, l)
		}
	}
	return out
}
