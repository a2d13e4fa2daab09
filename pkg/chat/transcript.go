package chat

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
)

// Format selects the transcript encoding.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts the names used in the config file.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "markdown", "md", "":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unsupported transcript format: %q", name)
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatHTML:
		return "html"
	default:
		return "md"
	}
}

type transcriptDoc struct {
	Title      string    `json:"title"`
	ExportedAt time.Time `json:"exported_at"`
	Messages   []Message `json:"messages"`
}

// WriteTranscript encodes messages to w in the given format.
func WriteTranscript(w io.Writer, format Format, title string, exportedAt time.Time, messages []Message) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if messages == nil {
			messages = []Message{}
		}
		if err := enc.Encode(transcriptDoc{Title: title, ExportedAt: exportedAt, Messages: messages}); err != nil {
			return fmt.Errorf("failed to encode transcript: %w", err)
		}
		return nil

	case FormatMarkdown:
		_, err := io.WriteString(w, renderMarkdown(title, exportedAt, messages))
		if err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
		return nil

	case FormatHTML:
		var body bytes.Buffer
		if err := goldmark.Convert([]byte(renderMarkdown(title, exportedAt, messages)), &body); err != nil {
			return fmt.Errorf("failed to render transcript html: %w", err)
		}
		page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
			html.EscapeString(title), body.String())
		if _, err := io.WriteString(w, page); err != nil {
			return fmt.Errorf("failed to write transcript: %w", err)
		}
		return nil
	}

	return fmt.Errorf("unsupported transcript format: %q", format)
}

// SaveTranscript writes a new transcript file under dir and returns its path.
func SaveTranscript(dir string, format Format, title string, now time.Time, messages []Message) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	name := fmt.Sprintf("knowva-%s.%s", now.Format("20060102-150405"), format.Ext())
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create transcript: %w", err)
	}

	if err := WriteTranscript(f, format, title, now, messages); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close transcript: %w", err)
	}
	return path, nil
}

func renderMarkdown(title string, exportedAt time.Time, messages []Message) string {
	var sb strings.Builder
	if title == "" {
		title = "Transcript"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	fmt.Fprintf(&sb, "_Exported %s_\n", exportedAt.Format(time.RFC3339))

	for _, msg := range messages {
		author := "You"
		if msg.Role == RoleAssistant {
			author = "Assistant"
		}
		sb.WriteString("\n---\n\n")
		fmt.Fprintf(&sb, "**%s** · %s", author, msg.Timestamp.Format(time.RFC3339))
		if msg.Confidence != "" {
			fmt.Fprintf(&sb, " · confidence: %s", msg.Confidence)
		}
		sb.WriteString("\n\n")
		sb.WriteString(strings.TrimSpace(msg.Text))
		sb.WriteString("\n")

		if len(msg.Sources) > 0 {
			sb.WriteString("\nSources:\n\n")
			for _, src := range msg.Sources {
				fmt.Fprintf(&sb, "- %s\n", src.Filename)
			}
		}
	}
	return sb.String()
}
