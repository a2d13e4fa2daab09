package messagelist

import (
	"regexp"
	"strings"

	"knowva_cli/pkg/ui/components/utils"
	"knowva_cli/pkg/ui/styles"

	"github.com/mattn/go-runewidth"
)

var listMarker = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+`)

type textToken struct {
	text string
	bold bool
}

// renderText turns answer text into styled lines no wider than width.
// It understands the subset of markdown answer services commonly emit:
// **bold**, # headings, bullet/numbered lists and fenced code blocks.
func renderText(content string, width int) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = utils.SanitizeContent(normalized)

	var rendered []string
	inCode := false
	lines := strings.Split(normalized, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.ReplaceAll(lines[i], "\t", "    ")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			continue
		}
		if inCode {
			for _, part := range utils.SplitByWidth(line, width) {
				rendered = append(rendered, styles.CodeStyle.Render(utils.PadPlain(part, width)))
			}
			continue
		}

		if trimmed == "" {
			rendered = append(rendered, "")
			continue
		}

		if isTableRow(trimmed) {
			end := i
			for end < len(lines) && isTableRow(strings.TrimSpace(lines[end])) {
				end++
			}
			rendered = append(rendered, renderTable(lines[i:end], width)...)
			i = end - 1
			continue
		}

		if heading := strings.TrimLeft(trimmed, "#"); heading != trimmed && strings.HasPrefix(heading, " ") {
			tokens := tokenize(heading)
			for i := range tokens {
				tokens[i].bold = true
			}
			rendered = append(rendered, wrapTokens(tokens, width, "", "")...)
			continue
		}

		if m := listMarker.FindStringSubmatch(line); m != nil {
			prefix := m[1] + m[2] + " "
			indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
			rendered = append(rendered, wrapTokens(tokenize(line[len(m[0]):]), width, prefix, indent)...)
			continue
		}

		rendered = append(rendered, wrapTokens(tokenize(line), width, "", "")...)
	}

	// Drop trailing blank lines so bubbles hug their content.
	for len(rendered) > 0 && rendered[len(rendered)-1] == "" {
		rendered = rendered[:len(rendered)-1]
	}
	if len(rendered) == 0 {
		return []string{""}
	}
	return rendered
}

func isTableRow(line string) bool {
	return strings.HasPrefix(line, "|") && strings.Count(line, "|") >= 2
}

func isTableSeparator(cells []string) bool {
	for _, cell := range cells {
		if strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}

func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(strings.ReplaceAll(cells[i], "**", ""))
	}
	return cells
}

// renderTable aligns pipe-table rows into columns. Tables that cannot fit
// width fall back to one wrapped line per row.
func renderTable(rows []string, width int) []string {
	var table [][]string
	var colWidths []int
	for _, row := range rows {
		cells := splitTableRow(row)
		if isTableSeparator(cells) {
			continue
		}
		for c, cell := range cells {
			if c >= len(colWidths) {
				colWidths = append(colWidths, 0)
			}
			colWidths[c] = max(colWidths[c], runewidth.StringWidth(cell))
		}
		table = append(table, cells)
	}

	total := 0
	for _, w := range colWidths {
		total += w
	}
	total += 3 * max(len(colWidths)-1, 0)

	var out []string
	if total > width {
		for _, cells := range table {
			out = append(out, wrapTokens(tokenize(strings.Join(cells, " | ")), width, "", "")...)
		}
		return out
	}

	sep := styles.TableBorderStyle.Render(" │ ")
	for r, cells := range table {
		parts := make([]string, len(colWidths))
		for c := range colWidths {
			cell := ""
			if c < len(cells) {
				cell = cells[c]
			}
			style := styles.TextStyle
			if r == 0 {
				style = styles.TextBoldStyle
			}
			parts[c] = style.Render(utils.PadPlain(cell, colWidths[c]))
		}
		out = append(out, strings.Join(parts, sep))
	}
	return out
}

// tokenize splits a line into words, toggling bold at each "**".
func tokenize(line string) []textToken {
	var tokens []textToken
	bold := false

	for len(line) > 0 {
		idx := strings.Index(line, "**")
		segment := line
		if idx >= 0 {
			segment = line[:idx]
		}
		for _, word := range strings.Fields(segment) {
			tokens = append(tokens, textToken{text: word, bold: bold})
		}
		if idx < 0 {
			break
		}
		bold = !bold
		line = line[idx+2:]
	}

	return tokens
}

// wrapTokens greedily fills lines up to width. The first line starts with
// prefix and continuation lines with indent.
func wrapTokens(tokens []textToken, width int, prefix, indent string) []string {
	if width <= 0 {
		return []string{""}
	}

	if runewidth.StringWidth(prefix) >= width {
		prefix, indent = "", ""
	}
	avail := width - runewidth.StringWidth(prefix)

	var lines []string
	for i, row := range layoutTokens(tokens, avail) {
		lead := indent
		if i == 0 {
			lead = prefix
		}
		lines = append(lines, styles.TextStyle.Render(lead)+renderTokens(row))
	}
	return lines
}

// wrapPlain word-wraps unstyled text, keeping explicit line breaks.
func wrapPlain(text string, width int) []string {
	var lines []string
	for _, line := range strings.Split(utils.SanitizeContent(text), "\n") {
		var tokens []textToken
		for _, word := range strings.Fields(line) {
			tokens = append(tokens, textToken{text: word})
		}
		for _, row := range layoutTokens(tokens, width) {
			words := make([]string, len(row))
			for i, token := range row {
				words[i] = token.text
			}
			lines = append(lines, strings.Join(words, " "))
		}
	}
	return lines
}

// layoutTokens splits tokens into rows no wider than width, hard-breaking
// words that are wider than a whole row. It always returns at least one row.
func layoutTokens(tokens []textToken, width int) [][]textToken {
	var rows [][]textToken
	var current []textToken
	lineWidth := 0

	for _, token := range tokens {
		for _, part := range utils.SplitByWidth(token.text, width) {
			partWidth := runewidth.StringWidth(part)
			if lineWidth > 0 && lineWidth+1+partWidth > width {
				rows = append(rows, current)
				current = nil
				lineWidth = 0
			}
			if lineWidth > 0 {
				lineWidth++
			}
			current = append(current, textToken{text: part, bold: token.bold})
			lineWidth += partWidth
		}
	}

	if len(current) > 0 || len(rows) == 0 {
		rows = append(rows, current)
	}
	return rows
}

func renderTokens(tokens []textToken) string {
	var sb strings.Builder
	for i, token := range tokens {
		if i > 0 {
			sb.WriteString(styles.TextStyle.Render(" "))
		}
		if token.bold {
			sb.WriteString(styles.TextBoldStyle.Render(token.text))
		} else {
			sb.WriteString(styles.TextStyle.Render(token.text))
		}
	}
	return sb.String()
}
