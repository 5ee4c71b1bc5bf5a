package rendering

import (
	"strings"
)

// Text prints the layout as plain text. Right-aligned content follows the left
// content after " / " so lines stay greppable.
func Text(l Layout) string {
	var b strings.Builder
	if l.Header.Name != "" {
		b.WriteString(l.Header.Name)
		b.WriteByte('\n')
	}
	if l.Header.Contact != "" {
		b.WriteString(l.Header.Contact)
		b.WriteByte('\n')
	}

	for _, s := range l.Sections {
		b.WriteByte('\n')
		b.WriteString(strings.ToUpper(s.Title))
		b.WriteByte('\n')
		for _, block := range s.Blocks {
			for _, line := range block.Lines {
				b.WriteString(textLine(line))
				b.WriteByte('\n')
			}
		}
	}
	return b.String()
}

func textLine(line Line) string {
	text := line.Text()
	if line.Bullet {
		return Bullet + text
	}
	if line.Right != "" {
		if text == "" {
			return line.Right
		}
		return text + " / " + line.Right
	}
	return text
}
