package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"knowva_cli/pkg/answer"
	"knowva_cli/pkg/chat"
)

// maxQuestionBytes bounds a single piped line.
const maxQuestionBytes = 1 << 20

// ErrEmptyQuestion is returned when a one-shot question is blank.
var ErrEmptyQuestion = errors.New("question is empty")

// PipeHandler answers questions without the full-screen UI, one reply per
// question, written as plain text.
type PipeHandler struct {
	asker        answer.Asker
	conversation *chat.Conversation
	out          io.Writer
}

// NewPipeHandler creates a pipe handler writing replies to out
func NewPipeHandler(asker answer.Asker, out io.Writer) *PipeHandler {
	return &PipeHandler{
		asker:        asker,
		conversation: chat.NewConversation(),
		out:          out,
	}
}

// Conversation returns every question and reply handled so far.
func (h *PipeHandler) Conversation() *chat.Conversation {
	return h.conversation
}

// Ask sends one question and writes the reply or the fallback text. It
// reports whether the service answered.
func (h *PipeHandler) Ask(ctx context.Context, text string) (bool, error) {
	question, ok := h.conversation.Begin(text)
	if !ok {
		return false, ErrEmptyQuestion
	}

	ans, err := h.asker.Ask(ctx, question)
	if err != nil {
		slog.Warn("answer_failed", "error", err)
		h.conversation.Fail(err)
	} else {
		h.conversation.Resolve(ans)
	}

	reply, _ := h.conversation.LastAnswer()
	if _, werr := io.WriteString(h.out, FormatReply(reply)); werr != nil {
		return false, fmt.Errorf("failed to write reply: %w", werr)
	}
	return err == nil, nil
}

// Run reads one question per line from r until EOF, skipping blank lines.
// Each question is answered before the next line is read. It returns the
// number of questions that fell back to the error reply.
func (h *PipeHandler) Run(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxQuestionBytes)

	failed := 0
	first := true
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return failed, err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if !first {
			if _, err := io.WriteString(h.out, "\n"); err != nil {
				return failed, fmt.Errorf("failed to write reply: %w", err)
			}
		}
		first = false

		ok, err := h.Ask(ctx, line)
		if err != nil {
			return failed, err
		}
		if !ok {
			failed++
		}
	}

	if err := scanner.Err(); err != nil {
		return failed, fmt.Errorf("failed to read pipe input: %w", err)
	}

	slog.Info("pipe_finished", "questions", h.conversation.Len()/2, "failed", failed)
	return failed, nil
}

// FormatReply renders an assistant message as plain text with its sources.
func FormatReply(msg chat.Message) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(msg.Text, "\n"))
	sb.WriteString("\n")

	if len(msg.Sources) > 0 {
		sb.WriteString("\nSources:\n")
		for _, src := range msg.Sources {
			sb.WriteString("- ")
			sb.WriteString(src.Filename)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
