// Package welcome draws the panel shown before the first question.
package welcome

import (
	"fmt"
	"strings"

	"knowva_cli/pkg/ui/components/utils"
	"knowva_cli/pkg/ui/styles"
	"knowva_cli/pkg/version"

	"github.com/mattn/go-runewidth"
)

const maxBoxWidth = 53

// Prompt invites the first question.
const Prompt = "Ask a question to get started."

var shortcuts = []struct{ key, desc string }{
	{"Enter", "Send question"},
	{"↑/↓ PgUp/PgDn", "Scroll messages"},
	{"Ctrl+Y", "Copy last answer"},
	{"Ctrl+S", "Save transcript"},
	{"Esc", "Quit"},
}

// Message returns the welcome box centered in width columns.
func Message(title string, width int) string {
	boxWidth := min(maxBoxWidth, width-2)
	if boxWidth < 20 {
		return styles.PlaceholderStyle.Render(utils.TruncateToWidth(Prompt, width))
	}

	makeLine := func(content string, visualWidth int) string {
		pad := max(boxWidth-visualWidth, 0)
		return styles.WelcomeBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.WelcomeBorderStyle.Render("│")
	}
	centered := func(text string, style func(...string) string) string {
		text = utils.TruncateToWidth(text, boxWidth-2)
		w := runewidth.StringWidth(text)
		left := (boxWidth - w) / 2
		return makeLine(strings.Repeat(" ", left)+style(text), left+w)
	}

	top := styles.WelcomeBorderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := styles.WelcomeBorderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	lines := []string{top}
	lines = append(lines, centered("Welcome to "+title, styles.WelcomeTitleStyle.Render))
	lines = append(lines, centered(Prompt, styles.PlaceholderStyle.Render))
	lines = append(lines, empty)

	header := "  Shortcuts:"
	lines = append(lines, makeLine(styles.WelcomeHeaderStyle.Render(header), runewidth.StringWidth(header)))
	for _, s := range shortcuts {
		keyFormatted := fmt.Sprintf("    %-15s", s.key)
		desc := utils.TruncateToWidth(s.desc, boxWidth-runewidth.StringWidth(keyFormatted))
		line := styles.WelcomeKeyStyle.Render(keyFormatted) + styles.TextStyle.Render(desc)
		lines = append(lines, makeLine(line, runewidth.StringWidth(keyFormatted)+runewidth.StringWidth(desc)))
	}

	lines = append(lines, empty)
	lines = append(lines, centered(version.Summary(), styles.WelcomeVersionStyle.Render))
	lines = append(lines, bottom)

	left := strings.Repeat(" ", max((width-boxWidth-2)/2, 0))
	for i := range lines {
		lines[i] = left + lines[i]
	}
	return strings.Join(lines, "\n")
}
