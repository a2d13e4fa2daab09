// Package shell renders the header and footer bars framing the conversation.
package shell

import (
	"strings"

	"knowva_cli/pkg/ui/styles"

	"github.com/charmbracelet/x/ansi"
)

const separator = "  ·  "

// Header renders the title and subtitle on one line above a rule.
func Header(title, subtitle string, width int) string {
	if width <= 0 {
		return ""
	}

	line := styles.HeaderTitleStyle.Render(title)
	if subtitle != "" {
		line += styles.HeaderSubtitleStyle.Render(separator + subtitle)
	}
	line = fit(line, width)

	return styles.HeaderBarStyle.Width(width).Render(line)
}

// Footer renders the footer label, key hints and an optional status notice
// on one line below a rule. The status replaces the hints while it is shown.
func Footer(label, hints, status string, width int) string {
	if width <= 0 {
		return ""
	}

	var parts []string
	if label != "" {
		parts = append(parts, styles.FooterStyle.Render(label))
	}
	if status != "" {
		parts = append(parts, styles.StatusStyle.Render(status))
	} else if hints != "" {
		parts = append(parts, styles.FooterStyle.Render(hints))
	}

	line := fit(strings.Join(parts, styles.FooterStyle.Render(separator)), width)
	return styles.FooterBarStyle.Width(width).Render(line)
}

// HeaderHeight and FooterHeight include the rule line.
const (
	HeaderHeight = 2
	FooterHeight = 2
)

func fit(line string, width int) string {
	if ansi.StringWidth(line) <= width {
		return line
	}
	return ansi.Truncate(line, width, "…")
}
