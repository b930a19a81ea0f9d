package bbcode

import "strings"

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenOpen
	tokenClose
)

// token is one element of the lexed markup stream. Tag tokens keep their raw
// source so an unmatched or unknown tag can be replayed as literal text.
type token struct {
	kind tokenKind
	text string // Literal text, or raw tag source for open/close tokens.
	name string // Lowercased tag name, open/close only.
	arg  string // Text after '=' in the opening tag, if any.
}

// lex splits markup into text runs and bracket tags in a single scan. Bracket
// sequences that do not form a well-shaped tag stay in the text stream
// untouched.
func lex(s string) []token {
	var (
		tokens []token
		text   strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, token{kind: tokenText, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '[' {
			text.WriteByte(s[i])
			i++
			continue
		}
		tok, next, ok := scanTag(s, i)
		if !ok {
			text.WriteByte(s[i])
			i++
			continue
		}
		flush()
		tokens = append(tokens, tok)
		i = next
	}
	flush()
	return tokens
}

// scanTag reads a tag starting at the '[' at position start. It returns the
// token and the position just past the closing ']'.
func scanTag(s string, start int) (token, int, bool) {
	i := start + 1
	closing := false
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}

	nameStart := i
	for i < len(s) && isTagNameByte(s[i]) {
		i++
	}
	if i == nameStart {
		return token{}, 0, false
	}
	name := strings.ToLower(s[nameStart:i])

	var arg string
	if !closing && i < len(s) && s[i] == '=' {
		argStart := i + 1
		j := strings.IndexByte(s[argStart:], ']')
		if j < 0 {
			return token{}, 0, false
		}
		arg = s[argStart : argStart+j]
		i = argStart + j
	}
	if i >= len(s) || s[i] != ']' {
		return token{}, 0, false
	}

	kind := tokenOpen
	if closing {
		kind = tokenClose
	}
	return token{kind: kind, text: s[start : i+1], name: name, arg: arg}, i + 1, true
}

func isTagNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// pairTags matches open and close tags in one pass over the token stream.
// The result maps each tag token's index to its partner's index, or -1 when
// unmatched. A close tag binds to the innermost open tag of the same name;
// opens skipped over stay available for later closes.
func pairTags(tokens []token) []int {
	match := make([]int, len(tokens))
	for i := range match {
		match[i] = -1
	}

	var stack []int
	for i, tok := range tokens {
		switch tok.kind {
		case tokenOpen:
			stack = append(stack, i)
		case tokenClose:
			for j := len(stack) - 1; j >= 0; j-- {
				if tokens[stack[j]].name == tok.name {
					match[stack[j]] = i
					match[i] = stack[j]
					stack = append(stack[:j], stack[j+1:]...)
					break
				}
			}
		}
	}
	return match
}
