// Package bbcode converts the forum's bracket-tag markup into a styled-text
// intermediate form that the terminal UI can render safely. Post content is
// adversarial input: literal text and styling travel in separate fields of
// each span and literal text is never re-parsed, so content cannot smuggle
// styling directives into the output.
package bbcode

import "strings"

// Span is a run of literal text with the styles that apply to it.
type Span struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool
	Color     string // Color name or hex, empty for default.
	Link      string // Target URL when the span is a link.
}

func (s Span) sameStyle(o Span) bool {
	return s.Bold == o.Bold &&
		s.Italic == o.Italic &&
		s.Underline == o.Underline &&
		s.Strike == o.Strike &&
		s.Color == o.Color &&
		s.Link == o.Link
}

// StyledText is an ordered sequence of styled runs.
type StyledText struct {
	Spans []Span
}

// Plain returns the text content with all styling discarded.
func (st StyledText) Plain() string {
	var b strings.Builder
	for _, s := range st.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// append adds a span, merging it into the previous one when the styles are
// identical.
func (st *StyledText) append(s Span) {
	if s.Text == "" {
		return
	}
	if n := len(st.Spans); n > 0 && st.Spans[n-1].sameStyle(s) {
		st.Spans[n-1].Text += s.Text
		return
	}
	st.Spans = append(st.Spans, s)
}
