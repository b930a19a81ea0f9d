package nga

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/gyokusei/nga-cli/domain"
)

// jsonpPrefix wraps some endpoints' bodies in a script assignment instead of
// bare JSON.
const jsonpPrefix = "window.script_muti_get_var_store="

// Decoder turns raw response bytes into a validated payload. It keeps the
// last text it attempted to parse so a failure can be inspected after the
// fact. Construct one per client; it carries no global state.
type Decoder struct {
	lastText string
}

// NewDecoder returns a Decoder ready for use.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// LastText returns the exact text of the most recent decode attempt,
// post-repair when a repair pass ran.
func (d *Decoder) LastText() string {
	return d.lastText
}

// Decode runs the full pipeline: content-type gate, character decoding with
// GBK fallback, JSONP unwrap, escape repair, lenient parse, error-signal
// extraction and data extraction. On success it returns the value under the
// payload's "data" key, or the whole payload when no such wrapper exists.
func (d *Decoder) Decode(body []byte, contentType string) (any, error) {
	text := decodeText(body)

	if !strings.Contains(strings.ToLower(contentType), "json") {
		d.lastText = text
		return nil, &domain.APIError{
			Kind:    domain.ErrUnexpectedContentType,
			Message: fmt.Sprintf("declared %q", contentType),
		}
	}

	if strings.HasPrefix(text, jsonpPrefix) {
		text = strings.TrimPrefix(text, jsonpPrefix)
		text = strings.TrimSuffix(strings.TrimSpace(text), ";")
	}

	if strings.TrimSpace(text) == "" {
		d.lastText = text
		return nil, &domain.APIError{Kind: domain.ErrEmptyResponse}
	}

	text = repairJSON(text)
	d.lastText = text

	var payload any
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		apiErr := &domain.APIError{Kind: domain.ErrJSONSyntax, Message: err.Error(), Err: err}
		if syn, ok := err.(*json.SyntaxError); ok {
			apiErr.Line, apiErr.Col = lineCol(text, syn.Offset)
		}
		return nil, apiErr
	}

	obj, isObject := payload.(map[string]any)
	if isObject {
		if msg, ok := errorSignal(obj["error"]); ok {
			return nil, &domain.APIError{Kind: domain.ErrRemote, Message: msg}
		}
		if data, ok := obj["data"]; ok {
			return data, nil
		}
	}
	return payload, nil
}

// decodeText interprets bytes as UTF-8 when they validate, otherwise as GBK
// with replacement characters for undecodable sequences. Bad encoding only
// costs visual fidelity, never a failure.
func decodeText(body []byte) string {
	if utf8.Valid(body) {
		return string(body)
	}
	decoded, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		// The GBK decoder substitutes rather than fails; this is a guard
		// against transformer misuse only.
		return string(body)
	}
	return string(decoded)
}

// validEscapes is the set of characters JSON permits after a backslash.
const validEscapes = `"\/bfnrtu`

// repairJSON fixes the two upstream quirks that break strict parsers, in a
// single scan: lone backslashes that do not start a valid escape sequence
// are doubled, and raw control bytes inside string literals are rewritten as
// escape sequences. Already-valid JSON passes through unchanged.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 < len(s) && strings.IndexByte(validEscapes, s[i+1]) >= 0 {
				b.WriteByte(c)
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case c == '"':
			inString = !inString
			b.WriteByte(c)
		case c < 0x20 && inString:
			switch c {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				fmt.Fprintf(&b, `\u%04x`, c)
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// errorSignal extracts the service-reported error from a payload's "error"
// key: the first element when it is a non-empty list, otherwise the raw
// value. Falsy values (absent, nil, "", 0, false, empty list) mean no error.
func errorSignal(v any) (string, bool) {
	switch e := v.(type) {
	case nil:
		return "", false
	case string:
		if e == "" {
			return "", false
		}
		return e, true
	case []any:
		if len(e) == 0 {
			return "", false
		}
		return stringify(e[0]), true
	case bool:
		if !e {
			return "", false
		}
		return "true", true
	case float64:
		if e == 0 {
			return "", false
		}
		return stringify(e), true
	case map[string]any:
		if len(e) == 0 {
			return "", false
		}
		return stringify(e), true
	default:
		return stringify(e), true
	}
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// lineCol converts a byte offset from the JSON parser into a 1-based line
// and column for diagnostics.
func lineCol(text string, offset int64) (line, col int) {
	if offset < 0 || offset > int64(len(text)) {
		return 0, 0
	}
	line, col = 1, 1
	for _, c := range []byte(text[:offset]) {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
