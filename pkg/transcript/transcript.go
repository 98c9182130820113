// Package transcript holds the ordered sequence of conversation lines
// shown to the user. Lines are append-only; only pending agent lines
// are ever rewritten, and only through this package.
package transcript

import (
	"errors"
	"sync"
)

// Speaker identifies who a line belongs to.
type Speaker int

const (
	SpeakerUser Speaker = iota
	SpeakerAgent
)

func (s Speaker) String() string {
	switch s {
	case SpeakerUser:
		return "user"
	case SpeakerAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// LineID identifies a line for targeted replacement. IDs are assigned
// at append time and never reused.
type LineID int64

// Line is one rendered unit of conversation.
type Line struct {
	ID      LineID  `json:"id"`
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// ErrNoLineToReplace is returned by ReplaceLast when the transcript is empty.
var ErrNoLineToReplace = errors.New("transcript: no line to replace")

// ErrLineNotFound is returned by Replace for an unknown line ID.
var ErrLineNotFound = errors.New("transcript: line not found")

// Transcript is the append-only line sequence. It is safe for
// concurrent use: appends arrive from the submission path while
// replacements arrive from resolution goroutines.
type Transcript struct {
	mu       sync.Mutex
	lines    []Line
	nextID   LineID
	onChange func()
}

// New returns an empty transcript.
func New() *Transcript {
	return &Transcript{}
}

// OnChange registers a hook invoked after every successful mutation.
// The hook is called without the internal lock held, so it may read
// the transcript back. Only one hook is supported; later calls replace
// the earlier one.
func (t *Transcript) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Append adds a new line at the end and returns its ID.
func (t *Transcript) Append(speaker Speaker, text string) LineID {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.lines = append(t.lines, Line{ID: id, Speaker: speaker, Text: text})
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
	return id
}

// ReplaceLast overwrites the text of the most recently appended line.
// It never creates a line; an empty transcript yields ErrNoLineToReplace.
func (t *Transcript) ReplaceLast(text string) error {
	t.mu.Lock()
	if len(t.lines) == 0 {
		t.mu.Unlock()
		return ErrNoLineToReplace
	}
	t.lines[len(t.lines)-1].Text = text
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// Replace overwrites the text of the line with the given ID, wherever
// it sits in the sequence. This is the targeted variant used to resolve
// a pending placeholder: a reply always lands on its own line even if
// later lines have been appended in the meantime.
func (t *Transcript) Replace(id LineID, text string) error {
	t.mu.Lock()
	idx := -1
	for i := range t.lines {
		if t.lines[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return ErrLineNotFound
	}
	t.lines[idx].Text = text
	fn := t.onChange
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
	return nil
}

// Lines returns a copy of the current line sequence.
func (t *Transcript) Lines() []Line {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Line, len(t.lines))
	copy(out, t.lines)
	return out
}

// Len returns the number of lines.
func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.lines)
}
