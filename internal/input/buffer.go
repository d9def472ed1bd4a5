// Package input accumulates the free text typed into dashboard prompts.
//
// Each Buffer wraps a bubbles textinput. Keys reach it one by one from the
// mode machine, filtered through the prompt's whitelist, and the textinput
// renders the value and cursor inside the header's prompt line.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
)

// Character whitelists for the two kinds of prompt.
const (
	IDChars    = "abcdefghijklmnopqrstuvwxyz1234567890"
	LabelChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890'-"
)

// MaxLen caps what a prompt accepts. Cards truncate long labels anyway.
const MaxLen = 64

// Buffer is a single-line edit buffer with a character whitelist.
// The zero value accepts nothing; use NewIDBuffer or NewLabelBuffer.
type Buffer struct {
	allowed    string
	allowSpace bool
	field      textinput.Model
}

// NewIDBuffer returns a buffer that accepts sensor id characters only.
func NewIDBuffer() *Buffer {
	return newBuffer(IDChars, false)
}

// NewLabelBuffer returns a buffer for labels, which may contain spaces.
func NewLabelBuffer() *Buffer {
	return newBuffer(LabelChars, true)
}

func newBuffer(allowed string, space bool) *Buffer {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = MaxLen
	// The dashboard redraws on its own tick, so the cursor does not blink.
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()
	return &Buffer{allowed: allowed, allowSpace: space, field: ti}
}

// Append adds every allowed rune of s and reports whether anything was added.
func (b *Buffer) Append(s string) bool {
	var accepted []rune
	for _, r := range s {
		if b.accepts(r) {
			accepted = append(accepted, r)
		}
	}
	if len(accepted) == 0 {
		return false
	}
	before := b.Len()
	b.field.SetValue(b.field.Value() + string(accepted))
	b.field.CursorEnd()
	return b.Len() > before
}

// Pop removes the last rune. It is a no-op on an empty buffer.
func (b *Buffer) Pop() {
	runes := []rune(b.field.Value())
	if len(runes) == 0 {
		return
	}
	b.field.SetValue(string(runes[:len(runes)-1]))
	b.field.CursorEnd()
}

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.field.Reset()
}

// String returns the current contents.
func (b *Buffer) String() string {
	return b.field.Value()
}

// Len returns the number of runes in the buffer.
func (b *Buffer) Len() int {
	return len([]rune(b.field.Value()))
}

// View renders the contents followed by the cursor.
func (b *Buffer) View() string {
	return b.field.View()
}

func (b *Buffer) accepts(r rune) bool {
	if r == ' ' {
		return b.allowSpace
	}
	return strings.ContainsRune(b.allowed, r)
}

// SanitizeID strips everything outside IDChars.
func SanitizeID(s string) string {
	return filter(s, IDChars, false)
}

// SanitizeLabel strips everything outside LabelChars and space, and trims
// surrounding whitespace.
func SanitizeLabel(s string) string {
	return strings.TrimSpace(filter(s, LabelChars, true))
}

func filter(s, allowed string, space bool) string {
	var b strings.Builder
	for _, r := range s {
		if (space && r == ' ') || strings.ContainsRune(allowed, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
