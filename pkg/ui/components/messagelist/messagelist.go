// Package messagelist renders the conversation as chat bubbles: the user's
// questions on the right, answers on the left.
package messagelist

import (
	"strings"

	"knowva_cli/pkg/chat"
	"knowva_cli/pkg/ui/components/utils"
	"knowva_cli/pkg/ui/styles"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
)

const (
	// bubbleRatio is the share of the width a bubble may use, in percent.
	bubbleRatio = 70
	// bubbleChrome is the border plus horizontal padding of a bubble.
	bubbleChrome = 4
	// minBubbleWidth below which bubbles use the full width.
	minBubbleWidth = 12

	timestampLayout = "15:04:05"
	thinkingText    = "Thinking..."
)

// Options controls how a message list is rendered.
type Options struct {
	// Pending appends the thinking row after the last message.
	Pending bool
	// Indicator is drawn in front of the thinking text, usually a spinner frame.
	Indicator string
	// Markdown renders answers with glamour when set.
	Markdown *Markdown
}

// Render draws messages in order for a list width cells wide.
func Render(messages []chat.Message, width int, opts Options) string {
	if width <= 0 {
		return ""
	}

	blocks := make([]string, 0, len(messages)+1)
	for _, msg := range messages {
		blocks = append(blocks, renderMessage(msg, width, opts.Markdown))
	}

	if opts.Pending {
		row := thinkingText
		if opts.Indicator != "" {
			row = opts.Indicator + " " + row
		}
		blocks = append(blocks, styles.ThinkingStyle.Render(row))
	}

	return strings.Join(blocks, "\n\n")
}

// BubbleWidth returns the outer width available to a single bubble.
func BubbleWidth(width int) int {
	outer := width * bubbleRatio / 100
	if outer < minBubbleWidth {
		outer = width
	}
	return outer
}

func renderMessage(msg chat.Message, width int, md *Markdown) string {
	outer := BubbleWidth(width)
	inner := max(outer-bubbleChrome, 1)

	if msg.IsUser() {
		bubble := styles.UserBubbleStyle.Render(strings.Join(wrapPlain(msg.Text, inner), "\n"))
		block := lipgloss.JoinVertical(lipgloss.Right, bubble, metaLine(msg, outer))
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	style := styles.AssistantBubbleStyle
	if msg.Failed {
		style = styles.ErrorBubbleStyle
	}

	var lines []string
	if md != nil {
		lines = md.Render(msg.ID, msg.Text, inner)
	} else {
		lines = renderText(msg.Text, inner)
	}

	parts := []string{style.Render(strings.Join(lines, "\n"))}
	parts = append(parts, sourcesBlock(msg.Sources, outer)...)
	parts = append(parts, metaLine(msg, outer))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// sourcesBlock lists cited filenames. Nothing is drawn for nil or empty
// sources.
func sourcesBlock(sources []chat.Source, width int) []string {
	if len(sources) == 0 {
		return nil
	}

	lines := []string{styles.SourcesLabelStyle.Render("Sources:")}
	for _, src := range sources {
		name := utils.TruncateToWidth(utils.SanitizeContent(src.Filename), width-2)
		lines = append(lines, styles.SourceStyle.Render("• "+name))
	}
	return lines
}

// metaLine is the timestamp label plus the confidence when one was sent.
func metaLine(msg chat.Message, width int) string {
	label := msg.Timestamp.Local().Format(timestampLayout)
	if msg.Confidence != "" {
		label += " · confidence: " + msg.Confidence
	}
	return styles.TimestampStyle.Render(utils.TruncateToWidth(utils.SanitizeContent(label), width))
}

// Markdown renders answers with glamour, caching the output per message
// until the width changes.
type Markdown struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	cache    map[string][]string
}

// NewMarkdown creates a glamour-backed renderer using a standard style name
// such as "dark", "light" or "notty".
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "dark"
	}
	return &Markdown{style: style, cache: make(map[string][]string)}
}

// Render returns the styled lines for text. Rendering failures fall back to
// the built-in renderer.
func (m *Markdown) Render(id, text string, width int) []string {
	if width != m.width || m.renderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return renderText(text, width)
		}
		m.renderer = r
		m.width = width
		clear(m.cache)
	}

	if lines, ok := m.cache[id]; ok && id != "" {
		return lines
	}

	out, err := m.renderer.Render(utils.SanitizeContent(text))
	if err != nil {
		return renderText(text, width)
	}

	lines := strings.Split(strings.Trim(out, "\n"), "\n")
	if id != "" {
		m.cache[id] = lines
	}
	return lines
}
