// Package logbuf is tepi's engine log: a named, bounded buffer of
// timestamped messages that is flushed as text lines when full.
package logbuf

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a message.
type Kind uint8

const (
	KindNormal Kind = iota
	KindWarn
	KindError
	KindCustom
)

const timeLayout = "15:04:05"

// ErrMalformedLine is returned by ParseLine for text not produced by
// Message.Format.
var ErrMalformedLine = errors.New("logbuf: malformed line")

// Message is one log entry.
type Message struct {
	Time    time.Time
	Kind    Kind
	Label   string // shown in place of the kind for KindCustom
	Filters []string
	Text    string
}

// KindLabel returns the bracketed name of the message's kind.
func (m Message) KindLabel() string {
	switch m.Kind {
	case KindNormal:
		return "NORMAL"
	case KindWarn:
		return "WARN"
	case KindError:
		return "ERROR"
	default:
		if m.Label == "" {
			return "CUSTOM"
		}
		return m.Label
	}
}

// Format renders the message as one line without a trailing newline:
//
//	[15:04:05][WARN][render][frame]: text
func (m Message) Format() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(m.Time.Format(timeLayout))
	b.WriteString("][")
	b.WriteString(m.KindLabel())
	b.WriteByte(']')
	for _, f := range m.Filters {
		b.WriteByte('[')
		b.WriteString(f)
		b.WriteByte(']')
	}
	b.WriteString(": ")
	b.WriteString(m.Text)
	return b.String()
}

func (m Message) String() string {
	return m.Format()
}

// ParseLine reverses Format. The returned time carries only the clock
// fields; its date is the zero date.
func ParseLine(line string) (Message, error) {
	line = strings.TrimRight(line, "\r\n")
	rest := line

	var tags []string
	for strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Message{}, fmt.Errorf("%w: unterminated bracket in %q", ErrMalformedLine, line)
		}
		tags = append(tags, rest[1:end])
		rest = rest[end+1:]
	}
	if len(tags) < 2 {
		return Message{}, fmt.Errorf("%w: missing time or kind in %q", ErrMalformedLine, line)
	}
	text, ok := strings.CutPrefix(rest, ": ")
	if !ok {
		return Message{}, fmt.Errorf("%w: missing separator in %q", ErrMalformedLine, line)
	}

	ts, err := time.Parse(timeLayout, tags[0])
	if err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	m := Message{Time: ts, Text: text}
	switch tags[1] {
	case "NORMAL":
		m.Kind = KindNormal
	case "WARN":
		m.Kind = KindWarn
	case "ERROR":
		m.Kind = KindError
	default:
		m.Kind = KindCustom
		m.Label = tags[1]
	}
	if len(tags) > 2 {
		m.Filters = tags[2:]
	}
	return m, nil
}
