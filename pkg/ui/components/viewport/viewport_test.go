package viewport

import (
	"fmt"
	"strings"
	"testing"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestNewChatViewport(t *testing.T) {
	vp := NewChatViewport()

	if vp.ready {
		t.Error("Expected viewport to not be ready initially")
	}
	if vp.View() != "Loading..." {
		t.Errorf("Expected loading text before sizing, got %q", vp.View())
	}
}

func TestChatViewport_SetSize(t *testing.T) {
	vp := NewChatViewport()
	vp.SetSize(80, 24)

	if vp.Viewport.Width() != 80 {
		t.Errorf("Expected width 80, got %d", vp.Viewport.Width())
	}
	if vp.Viewport.Height() != 24 {
		t.Errorf("Expected height 24, got %d", vp.Viewport.Height())
	}
	if !vp.ready {
		t.Error("Expected viewport to be ready after SetSize")
	}
}

func TestChatViewport_FollowsNewContent(t *testing.T) {
	vp := NewChatViewport()
	vp.SetSize(40, 5)

	vp.SetContent(numberedLines(20), true)
	if !vp.IsAtBottom() {
		t.Fatal("Expected view at bottom after follow")
	}
	if !strings.Contains(vp.View(), "line 20") {
		t.Errorf("Expected newest line visible:\n%s", vp.View())
	}
}

func TestChatViewport_KeepsScrollPosition(t *testing.T) {
	vp := NewChatViewport()
	vp.SetSize(40, 5)
	vp.SetContent(numberedLines(20), true)

	vp.PageUp()
	if vp.IsAtBottom() {
		t.Fatal("Expected to leave the bottom after PageUp")
	}
	offset := vp.Viewport.YOffset()

	// Re-render without a new message keeps the reader's position.
	vp.SetContent(numberedLines(20), false)
	if vp.Viewport.YOffset() != offset {
		t.Errorf("Expected offset %d kept, got %d", offset, vp.Viewport.YOffset())
	}

	// A new message always jumps to it.
	vp.SetContent(numberedLines(22), true)
	if !vp.IsAtBottom() {
		t.Error("Expected jump to bottom on new message")
	}
}

func TestChatViewport_Scrolling(t *testing.T) {
	vp := NewChatViewport()
	vp.SetSize(40, 5)
	vp.SetContent(numberedLines(20), true)

	if !vp.Overflows() {
		t.Error("Expected 20 lines to overflow 5 rows")
	}

	vp.GotoTop()
	if vp.Viewport.YOffset() != 0 {
		t.Errorf("Expected top offset 0, got %d", vp.Viewport.YOffset())
	}
	if vp.ScrollPercent() != 0 {
		t.Errorf("Expected 0%% at top, got %d", vp.ScrollPercent())
	}

	vp.ScrollDown()
	if vp.Viewport.YOffset() != 1 {
		t.Errorf("Expected offset 1, got %d", vp.Viewport.YOffset())
	}
	vp.ScrollUp()
	if vp.Viewport.YOffset() != 0 {
		t.Errorf("Expected offset 0, got %d", vp.Viewport.YOffset())
	}

	vp.PageDown()
	if vp.Viewport.YOffset() == 0 {
		t.Error("Expected PageDown to move the view")
	}

	vp.GotoBottom()
	if vp.ScrollPercent() != 100 {
		t.Errorf("Expected 100%% at bottom, got %d", vp.ScrollPercent())
	}
}

func TestChatViewport_ShortContent(t *testing.T) {
	vp := NewChatViewport()
	vp.SetSize(40, 10)
	vp.SetContent("only line", false)

	if vp.ScrollPercent() != 100 {
		t.Errorf("Expected 100%% when everything fits, got %d", vp.ScrollPercent())
	}
	if vp.Overflows() {
		t.Error("Short content should not overflow")
	}
}
