package ui

import (
	"knowva_cli/pkg/ui/components/shell"

	"charm.land/lipgloss/v2"
)

// LayoutManager splits the window into header, message list, input and footer
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager() *LayoutManager {
	return &LayoutManager{
		width:  80,
		height: 24,
	}
}

// SetSize updates the layout dimensions
func (lm *LayoutManager) SetSize(width, height int) {
	lm.width = width
	lm.height = height
}

// ListHeight returns the rows left for the message list under an input box
// inputHeight rows tall
func (lm *LayoutManager) ListHeight(inputHeight int) int {
	return max(lm.height-shell.HeaderHeight-shell.FooterHeight-inputHeight, 1)
}

// RenderLayout stacks the regions top to bottom
func (lm *LayoutManager) RenderLayout(header, list, input, footer string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		list,
		input,
		footer,
	)
}
