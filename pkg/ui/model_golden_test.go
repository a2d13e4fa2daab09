package ui

import (
	"fmt"
	"regexp"
	"strings"
	"testing"
	"time"

	"knowva_cli/pkg/answer"
	"knowva_cli/pkg/chat"
	"knowva_cli/pkg/ui/components/testutils"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
)

var spinnerPattern = regexp.MustCompile(`[⣾⣽⣻⢿⡿⣟⣯⣷]`)

const goldenQuestion = "What is term insurance?"

// normalizeOutput removes styling, trailing padding and the current spinner
// frame so snapshots only change when the layout does.
func normalizeOutput(output string) string {
	output = strings.ReplaceAll(ansi.Strip(output), "\r", "")
	output = spinnerPattern.ReplaceAllString(output, "⣾")

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// goldenConversation stamps messages one second apart from 09:30:00 local time.
func goldenConversation() *chat.Conversation {
	base := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
	tick := 0
	ids := 0
	return chat.NewConversation(
		chat.WithClock(func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		}),
		chat.WithIDGenerator(func() string {
			ids++
			return fmt.Sprintf("msg-%d", ids)
		}),
	)
}

func newGoldenModel(t *testing.T, c *chat.Conversation) Model {
	t.Helper()
	m := NewModel(testConfig(t), &fakeAsker{}, WithConversation(c))
	m, _ = press(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func requireGoldenView(t *testing.T, m Model) {
	t.Helper()
	golden.RequireEqual(t, []byte(normalizeOutput(m.View().Content)))
}

func TestModelViewGolden_Welcome(t *testing.T) {
	m := newGoldenModel(t, goldenConversation())
	requireGoldenView(t, m)
}

func TestModelViewGolden_Answer(t *testing.T) {
	c := goldenConversation()
	c.Begin(goldenQuestion)
	c.Resolve(answer.Answer{
		Text:       "Term insurance covers you for a fixed period.",
		Sources:    []answer.Source{{Filename: "policy.pdf"}, {Filename: "faq.pdf"}},
		Confidence: "high",
	})

	m := newGoldenModel(t, c)
	requireGoldenView(t, m)
}

func TestModelViewGolden_Thinking(t *testing.T) {
	m := newGoldenModel(t, goldenConversation())
	m = typeText(m, goldenQuestion)
	m, _ = press(m, testutils.TestKeyEnter)

	if !m.input.Disabled() {
		t.Fatal("Expected input disabled while the answer is pending")
	}
	requireGoldenView(t, m)
}

func TestModelViewGolden_Fallback(t *testing.T) {
	c := goldenConversation()
	c.Begin(goldenQuestion)
	c.Fail(answer.ErrRequestFailed)

	m := newGoldenModel(t, c)
	requireGoldenView(t, m)
}
