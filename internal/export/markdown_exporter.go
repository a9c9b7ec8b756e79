package export

import (
	"bytes"
	"fmt"
	"strings"
)

// MarkdownExporter renders datasets as GitHub-flavored Markdown tables.
type MarkdownExporter struct{}

func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// RenderReport writes an optional level-1 title followed by one table per section.
func (e *MarkdownExporter) RenderReport(title string, sections []Section) ([]byte, error) {
	buf := &bytes.Buffer{}
	if title != "" {
		fmt.Fprintf(buf, "# %s\n\n", title)
	}
	for _, s := range sections {
		if len(s.Data.Headers) == 0 {
			return nil, fmt.Errorf("markdown section %q requires at least one header", s.Heading)
		}
		if s.Heading != "" {
			fmt.Fprintf(buf, "## %s\n\n", s.Heading)
		}
		writeRow(buf, s.Data.Headers)
		sep := make([]string, len(s.Data.Headers))
		for i := range sep {
			sep[i] = "---"
			if len(s.Data.Rows) > 0 && cellAt(s.Data.Rows[0], i).Kind != KindText {
				sep[i] = "---:"
			}
		}
		writeRow(buf, sep)
		cells := make([]string, len(s.Data.Headers))
		for _, row := range s.Data.Rows {
			for i := range cells {
				cells[i] = display(cellAt(row, i))
			}
			writeRow(buf, cells)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

func writeRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, c := range cells {
		buf.WriteString(" ")
		buf.WriteString(cellEscaper.Replace(c))
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}
