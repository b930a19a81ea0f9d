package bbcode

import (
	"html"
	"regexp"
	"strings"
)

// ImageHost is the fixed host that path-relative image references resolve
// against. Terminals cannot show the image, so the reference becomes a link
// placeholder.
const ImageHost = "https://img.nga.178.com/"

const (
	imagePlaceholder   = "(image link)"
	invalidPlaceholder = "(invalid content)"
	collapseDefault    = "click to expand"
)

// Emoticon shorthand comes in three bracket dialects; all normalize to the
// common :name: shortcode form before lexing.
var (
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
	emoticonACRe = regexp.MustCompile(`\[s:ac:(\w+)\]`)
	emoticonA2Re = regexp.MustCompile(`\[s:a2:(\w+)\]`)
	emoticonRe   = regexp.MustCompile(`\[s:(\w+)\]`)
)

// Render converts forum markup to styled text. It is a pure function: no
// I/O, never fails, and terminates on any input including malformed nesting.
func Render(markup string) StyledText {
	text := html.UnescapeString(markup)
	text = lineBreakRe.ReplaceAllString(text, "\n")
	text = emoticonACRe.ReplaceAllString(text, ":$1:")
	text = emoticonA2Re.ReplaceAllString(text, ":$1:")
	text = emoticonRe.ReplaceAllString(text, ":$1:")

	tokens := lex(text)
	b := builder{tokens: tokens, match: pairTags(tokens)}

	var st StyledText
	b.renderRange(0, len(tokens), &st)
	return st
}

// RenderValue renders a value that should be a markup string. The API
// occasionally hands back other types here; those degrade to a visible
// placeholder instead of a crash.
func RenderValue(v any) StyledText {
	s, ok := v.(string)
	if !ok {
		var st StyledText
		st.append(Span{Text: invalidPlaceholder, Bold: true, Color: "red"})
		return st
	}
	return Render(s)
}

type builder struct {
	tokens []token
	match  []int
}

// spanStyle tracks the active inline styles while walking a token range.
// Counters rather than booleans so interleaved duplicate tags unwind
// correctly.
type spanStyle struct {
	bold      int
	italic    int
	underline int
	strike    int
	colors    []string
}

func (s spanStyle) apply(text string) Span {
	sp := Span{
		Text:      text,
		Bold:      s.bold > 0,
		Italic:    s.italic > 0,
		Underline: s.underline > 0,
		Strike:    s.strike > 0,
	}
	if n := len(s.colors); n > 0 {
		sp.Color = s.colors[n-1]
	}
	return sp
}

// renderRange walks tokens[lo:hi) and appends spans to st. Block tags
// recurse into their inner range; every other token is handled in place, so
// the walk visits each token once per enclosing block level and always
// terminates.
func (b *builder) renderRange(lo, hi int, st *StyledText) {
	var style spanStyle

	// Open tags consumed in this walk. A close tag only pops or vanishes
	// when its partner was handled here; a partner swallowed inside a block
	// range leaves the close unpaired, and it stays literal.
	handled := make(map[int]bool)

	for i := lo; i < hi; i++ {
		tok := b.tokens[i]
		switch tok.kind {
		case tokenText:
			st.append(style.apply(tok.text))

		case tokenOpen:
			close := b.match[i]
			matched := close >= 0 && close < hi
			switch {
			case isBlock(tok.name) && matched:
				b.renderBlock(tok, i+1, close, st)
				i = close
			case isLink(tok.name) && matched:
				b.renderLink(tok, i+1, close, st, style)
				i = close
			case isInline(tok.name) && matched:
				style.push(tok)
				handled[i] = true
			case isStripped(tok.name) && matched:
				// Tag removed, inner text flows through.
				handled[i] = true
			default:
				// Unknown tag, or a known tag missing its close: keep the
				// raw source as literal text rather than eating the rest of
				// the document.
				st.append(style.apply(tok.text))
			}

		case tokenClose:
			open := b.match[i]
			if open < lo || !handled[open] {
				st.append(style.apply(tok.text))
				continue
			}
			switch {
			case isInline(tok.name):
				style.pop(tok.name)
			case isStripped(tok.name):
				// Consumed with its open.
			default:
				st.append(style.apply(tok.text))
			}
		}
	}
}

// renderBlock resolves a quote or collapse body recursively, reduces it to
// neutralized plain text and wraps it in the block's fixed frame. Styling
// never crosses the block boundary.
func (b *builder) renderBlock(tok token, lo, hi int, st *StyledText) {
	var inner StyledText
	b.renderRange(lo, hi, &inner)
	body := blockquote(inner.Plain())

	st.append(Span{Text: "\n"})
	switch tok.name {
	case "quote":
		st.append(Span{Text: "Quote:", Bold: true})
	case "collapse":
		title := strings.TrimSpace(tok.arg)
		if title == "" {
			title = collapseDefault
		}
		st.append(Span{Text: "Collapsed: " + title, Bold: true})
	}
	st.append(Span{Text: "\n> " + body + "\n"})
}

func (b *builder) renderLink(tok token, lo, hi int, st *StyledText, style spanStyle) {
	var inner StyledText
	b.renderRange(lo, hi, &inner)
	body := strings.TrimSpace(inner.Plain())

	switch tok.name {
	case "img":
		sp := style.apply(imagePlaceholder)
		sp.Link = resolveImageURL(body)
		st.append(sp)
	case "url":
		link := strings.TrimSpace(tok.arg)
		if link == "" {
			link = body
		}
		if body == "" {
			body = link
		}
		if link == "" {
			return
		}
		sp := style.apply(body)
		sp.Link = link
		st.append(sp)
	}
}

func (s *spanStyle) push(tok token) {
	switch tok.name {
	case "b":
		s.bold++
	case "i":
		s.italic++
	case "u":
		s.underline++
	case "del":
		s.strike++
	case "color":
		s.colors = append(s.colors, strings.TrimSpace(tok.arg))
	}
}

func (s *spanStyle) pop(name string) {
	switch name {
	case "b":
		s.bold--
	case "i":
		s.italic--
	case "u":
		s.underline--
	case "del":
		s.strike--
	case "color":
		if n := len(s.colors); n > 0 {
			s.colors = s.colors[:n-1]
		}
	}
}

func isInline(name string) bool   { _, ok := inlineTags[name]; return ok }
func isBlock(name string) bool    { _, ok := blockTags[name]; return ok }
func isLink(name string) bool     { _, ok := linkTags[name]; return ok }
func isStripped(name string) bool { _, ok := strippedTags[name]; return ok }

// blockquote trims the body and prefixes continuation lines so multi-line
// quoted content stays inside the frame.
func blockquote(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n> ")
}

// resolveImageURL maps a path-relative image reference onto the image host.
// Absolute references pass through.
func resolveImageURL(path string) string {
	switch {
	case strings.HasPrefix(path, "http://"), strings.HasPrefix(path, "https://"):
		return path
	case strings.HasPrefix(path, "./"):
		return ImageHost + path[2:]
	default:
		return ImageHost + strings.TrimPrefix(path, "/")
	}
}
