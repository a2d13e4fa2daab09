// Package chat holds the conversation state shown by the UI: an append-only
// list of messages and the flag gating the single in-flight request.
package chat

import (
	"strings"
	"time"

	"knowva_cli/pkg/answer"

	"github.com/google/uuid"
)

// FallbackText replaces the answer whenever a request fails.
const FallbackText = "Sorry, I encountered an error. Please try again."

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Source is a filename citation attached to an assistant message.
type Source struct {
	Filename string `json:"filename"`
}

// Message is one turn in the conversation. Messages are never modified once
// appended.
type Message struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	Text       string    `json:"text"`
	Timestamp  time.Time `json:"timestamp"`
	Sources    []Source  `json:"sources,omitempty"`
	Confidence string    `json:"confidence,omitempty"`
	// Failed marks the fallback reply appended after a request error.
	Failed bool `json:"failed,omitempty"`
}

// IsUser reports whether the message was typed by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// Conversation is the ordered message list plus the pending flag.
// It is owned by a single writer and is not safe for concurrent use.
type Conversation struct {
	messages []Message
	pending  bool

	now   func() time.Time
	newID func() string
}

// Option configures a Conversation.
type Option func(*Conversation)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides the message ID source.
func WithIDGenerator(newID func() string) Option {
	return func(c *Conversation) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// NewConversation creates an empty conversation.
func NewConversation(opts ...Option) *Conversation {
	c := &Conversation{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Begin appends a user message for text and marks a request as pending.
// Blank text, or any submit while a request is pending, is rejected and
// leaves the conversation untouched.
func (c *Conversation) Begin(text string) (string, bool) {
	question := strings.TrimSpace(text)
	if question == "" || c.pending {
		return "", false
	}

	c.append(Message{Role: RoleUser, Text: question})
	c.pending = true
	return question, true
}

// Resolve appends the assistant reply built from ans and clears pending.
// It is a no-op when nothing is pending.
func (c *Conversation) Resolve(ans answer.Answer) bool {
	if !c.pending {
		return false
	}

	msg := Message{
		Role:       RoleAssistant,
		Text:       ans.Text,
		Confidence: ans.Confidence,
	}
	if ans.Sources != nil {
		msg.Sources = make([]Source, len(ans.Sources))
		for i, src := range ans.Sources {
			msg.Sources[i] = Source{Filename: src.Filename}
		}
	}

	c.append(msg)
	c.pending = false
	return true
}

// Fail appends the fallback reply and clears pending. The error itself is
// never shown. It is a no-op when nothing is pending.
func (c *Conversation) Fail(error) bool {
	if !c.pending {
		return false
	}

	c.append(Message{Role: RoleAssistant, Text: FallbackText, Failed: true})
	c.pending = false
	return true
}

// Pending reports whether a request is in flight.
func (c *Conversation) Pending() bool {
	return c.pending
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Messages returns a copy of the messages in append order.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.messages))
	for i, msg := range c.messages {
		if msg.Sources != nil {
			sources := make([]Source, len(msg.Sources))
			copy(sources, msg.Sources)
			msg.Sources = sources
		}
		out[i] = msg
	}
	return out
}

// LastAnswer returns the most recent assistant message.
func (c *Conversation) LastAnswer() (Message, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == RoleAssistant {
			return c.messages[i], true
		}
	}
	return Message{}, false
}

func (c *Conversation) append(msg Message) {
	msg.ID = c.newID()
	msg.Timestamp = c.now()
	c.messages = append(c.messages, msg)
}
