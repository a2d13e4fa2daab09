package viewport

import (
	"charm.land/bubbles/v2/viewport"
)

// ChatViewport wraps Bubble Tea's viewport for the scrolling message list
type ChatViewport struct {
	Viewport viewport.Model
	ready    bool
}

// NewChatViewport creates a new message list viewport
func NewChatViewport() ChatViewport {
	return ChatViewport{Viewport: viewport.New()}
}

// SetSize updates the viewport dimensions
func (v *ChatViewport) SetSize(width, height int) {
	wasAtBottom := v.IsAtBottom()
	v.Viewport.SetWidth(width)
	v.Viewport.SetHeight(max(height, 1))
	v.ready = true
	if wasAtBottom {
		v.Viewport.GotoBottom()
	}
}

// SetContent replaces the rendered list. The view jumps to the newest line
// when follow is set or the reader was already at the bottom.
func (v *ChatViewport) SetContent(content string, follow bool) {
	wasAtBottom := v.IsAtBottom()
	v.Viewport.SetContent(content)
	if follow || wasAtBottom {
		v.Viewport.GotoBottom()
	}
}

// View renders the viewport
func (v *ChatViewport) View() string {
	if !v.ready {
		return "Loading..."
	}
	return v.Viewport.View()
}

// Scrolling helpers

// ScrollUp scrolls the viewport up one line
func (v *ChatViewport) ScrollUp() {
	v.Viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down one line
func (v *ChatViewport) ScrollDown() {
	v.Viewport.ScrollDown(1)
}

// PageUp scrolls up one page
func (v *ChatViewport) PageUp() {
	v.Viewport.PageUp()
}

// PageDown scrolls down one page
func (v *ChatViewport) PageDown() {
	v.Viewport.PageDown()
}

// GotoTop jumps to the first message
func (v *ChatViewport) GotoTop() {
	v.Viewport.GotoTop()
}

// GotoBottom jumps to the newest message
func (v *ChatViewport) GotoBottom() {
	v.Viewport.GotoBottom()
}

// IsAtBottom returns true if scrolled to bottom
func (v *ChatViewport) IsAtBottom() bool {
	return v.Viewport.AtBottom()
}

// Overflows reports whether the list is taller than the view.
func (v *ChatViewport) Overflows() bool {
	return v.Viewport.TotalLineCount() > v.Viewport.Height()
}

// ScrollPercent returns how far down the list the view is, 0 to 100.
func (v *ChatViewport) ScrollPercent() int {
	if !v.Overflows() {
		return 100
	}
	return int(v.Viewport.ScrollPercent() * 100)
}
