// Package styles provides the central theme for the knowva_cli UI so that
// every component draws from the same palette.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (indigo)
	ColorAccent = lipgloss.Color("62")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196")
	ColorSuccess = lipgloss.Color("42")

	// Message bubbles
	ColorUserBubble      = lipgloss.Color("33")  // Blue, like a sent message
	ColorAssistantBubble = lipgloss.Color("244") // Grey
	ColorSources         = lipgloss.Color("247")

	// Code/syntax colors
	ColorCode        = lipgloss.Color("213")
	ColorCodeBg      = lipgloss.Color("235")
	ColorPlaceholder = lipgloss.Color("240")

	// Border colors
	ColorBorder      = lipgloss.Color("99")
	ColorBorderMuted = lipgloss.Color("238")
)

// Shell (header/footer) styles
var (
	// HeaderTitleStyle renders the application name.
	HeaderTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("189")).
				Bold(true)

	// HeaderSubtitleStyle renders the tagline next to the title.
	HeaderSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("141"))

	// HeaderBarStyle wraps the header line.
	HeaderBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(ColorBorder)

	// FooterBarStyle wraps the footer line.
	FooterBarStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(ColorBorder)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// StatusStyle for transient footer notices
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)
)

// Message styles
var (
	// UserBubbleStyle is the right-aligned bubble for the user's questions.
	UserBubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorUserBubble).
			Foreground(ColorTextBright).
			Padding(0, 1)

	// AssistantBubbleStyle is the left-aligned bubble for answers.
	AssistantBubbleStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorAssistantBubble).
				Foreground(ColorText).
				Padding(0, 1)

	// ErrorBubbleStyle is used for the fallback reply after a failed request.
	ErrorBubbleStyle = AssistantBubbleStyle.
				BorderForeground(ColorError)

	// SourcesLabelStyle renders the "Sources:" heading.
	SourcesLabelStyle = lipgloss.NewStyle().
				Foreground(ColorSources).
				Bold(true)

	// SourceStyle renders a single cited filename.
	SourceStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// TimestampStyle renders the time label under a message.
	TimestampStyle = lipgloss.NewStyle().
			Foreground(ColorPlaceholder)

	// ThinkingStyle renders the pending indicator.
	ThinkingStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)
)

// Text styles
var (
	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextBoldStyle for emphasized text
	TextBoldStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	// CodeStyle for code blocks
	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorCode).
			Background(ColorCodeBg)

	// TableBorderStyle for column separators in answer tables
	TableBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorderMuted)

	// PlaceholderStyle for placeholder text
	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder).
				Italic(true)
)

// Welcome panel styles
var (
	WelcomeBorderStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	WelcomeTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("189")).
				Bold(true)

	WelcomeHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Bold(true)

	WelcomeKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	WelcomeVersionStyle = lipgloss.NewStyle().
				Foreground(ColorPlaceholder)
)

// Input styles
var (
	// InputBoxStyle frames the question input while it accepts text.
	InputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 1)

	// InputBoxDisabledStyle frames the input while a request is pending.
	InputBoxDisabledStyle = InputBoxStyle.
				BorderForeground(ColorBorderMuted)

	// PromptStyle for the input prompt glyph
	PromptStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)
