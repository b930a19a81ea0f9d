package bbcode

import (
	"strings"
	"testing"
)

func TestRender_PlainTextPassesThrough(t *testing.T) {
	st := Render("hello world")
	if got := st.Plain(); got != "hello world" {
		t.Fatalf("expected plain text preserved, got %q", got)
	}
	if len(st.Spans) != 1 || st.Spans[0].Bold {
		t.Fatalf("expected a single unstyled span, got %+v", st.Spans)
	}
}

func TestRender_HTMLEntitiesAndLineBreaks(t *testing.T) {
	st := Render("a &lt;b&gt; c<br/>next<br>last")
	got := st.Plain()
	if !strings.Contains(got, "<b> c") {
		t.Fatalf("expected entities decoded, got %q", got)
	}
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected two line breaks, got %q", got)
	}
}

func TestRender_InlineStyles(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		check  func(Span) bool
	}{
		{"bold", "[b]x[/b]", func(s Span) bool { return s.Bold }},
		{"italic", "[i]x[/i]", func(s Span) bool { return s.Italic }},
		{"underline", "[u]x[/u]", func(s Span) bool { return s.Underline }},
		{"strike", "[del]x[/del]", func(s Span) bool { return s.Strike }},
		{"color", "[color=red]x[/color]", func(s Span) bool { return s.Color == "red" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := Render(tc.markup)
			if st.Plain() != "x" {
				t.Fatalf("expected inner text only, got %q", st.Plain())
			}
			found := false
			for _, s := range st.Spans {
				if s.Text == "x" && tc.check(s) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected styled span in %+v", st.Spans)
			}
		})
	}
}

func TestRender_NestedInlineStylesCompose(t *testing.T) {
	st := Render("[b]a[i]b[/i]c[/b]")
	if st.Plain() != "abc" {
		t.Fatalf("plain = %q", st.Plain())
	}
	for _, s := range st.Spans {
		if s.Text == "b" && (!s.Bold || !s.Italic) {
			t.Fatalf("expected nested span bold+italic, got %+v", s)
		}
		if s.Text == "c" && (s.Italic || !s.Bold) {
			t.Fatalf("expected italic closed before %q, got %+v", s.Text, s)
		}
	}
}

func TestRender_QuoteNeutralizesInnerStyling(t *testing.T) {
	st := Render("[quote]hello [b]world[/b][/quote]")
	plain := st.Plain()
	if !strings.Contains(plain, "Quote:") {
		t.Fatalf("expected quote frame, got %q", plain)
	}
	if !strings.Contains(plain, "> hello world") {
		t.Fatalf("expected neutralized blockquote body, got %q", plain)
	}
	for _, s := range st.Spans {
		if strings.Contains(s.Text, "world") && s.Bold {
			t.Fatalf("styling leaked through quote boundary: %+v", s)
		}
		if strings.Contains(s.Text, "[b]") || strings.Contains(s.Text, "[/b]") {
			t.Fatalf("structural token survived neutralization: %+v", s)
		}
	}
}

func TestRender_NestedQuotesTerminate(t *testing.T) {
	markup := "start"
	for i := 0; i < 12; i++ {
		markup = "[quote]" + markup + "[/quote]"
	}
	st := Render(markup)
	plain := st.Plain()
	if !strings.Contains(plain, "start") {
		t.Fatalf("inner text lost: %q", plain)
	}
	if strings.Contains(plain, "[quote]") || strings.Contains(plain, "[/quote]") {
		t.Fatalf("structural tokens left in output: %q", plain)
	}
}

func TestRender_CollapseFrameAndTitle(t *testing.T) {
	st := Render("[collapse=spoilers]the ending[/collapse]")
	plain := st.Plain()
	if !strings.Contains(plain, "Collapsed: spoilers") {
		t.Fatalf("expected titled collapse frame, got %q", plain)
	}
	if !strings.Contains(plain, "> the ending") {
		t.Fatalf("expected collapse body, got %q", plain)
	}

	st = Render("[collapse]hidden[/collapse]")
	if !strings.Contains(st.Plain(), "Collapsed: "+collapseDefault) {
		t.Fatalf("expected default collapse title, got %q", st.Plain())
	}
}

func TestRender_ImageBecomesLinkPlaceholder(t *testing.T) {
	st := Render("[img]./mon_202401/x/abc.jpg[/img]")
	if len(st.Spans) != 1 {
		t.Fatalf("expected one span, got %+v", st.Spans)
	}
	s := st.Spans[0]
	if s.Text != imagePlaceholder {
		t.Fatalf("expected placeholder text, got %q", s.Text)
	}
	if s.Link != ImageHost+"mon_202401/x/abc.jpg" {
		t.Fatalf("unexpected image link %q", s.Link)
	}
}

func TestRender_URLForms(t *testing.T) {
	st := Render("[url]https://example.com[/url]")
	if len(st.Spans) != 1 || st.Spans[0].Link != "https://example.com" || st.Spans[0].Text != "https://example.com" {
		t.Fatalf("bare url form: %+v", st.Spans)
	}

	st = Render("[url=https://example.com]here[/url]")
	if len(st.Spans) != 1 || st.Spans[0].Link != "https://example.com" || st.Spans[0].Text != "here" {
		t.Fatalf("argument url form: %+v", st.Spans)
	}
}

func TestRender_StrippedTagsKeepInnerText(t *testing.T) {
	cases := []string{
		"[size=150%]big[/size]",
		"[font=arial]big[/font]",
		"[align=center]big[/align]",
		"[item]big[/item]",
		"[achievement]big[/achievement]",
		"[dice]big[/dice]",
	}
	for _, markup := range cases {
		st := Render(markup)
		if st.Plain() != "big" {
			t.Fatalf("Render(%q) = %q, want inner text only", markup, st.Plain())
		}
	}
}

func TestRender_UnknownTagsStayLiteral(t *testing.T) {
	st := Render("a [frobnicate]b[/frobnicate] c")
	got := st.Plain()
	if got != "a [frobnicate]b[/frobnicate] c" {
		t.Fatalf("unknown tags must stay literal, got %q", got)
	}
}

func TestRender_UnclosedKnownTagStaysLiteral(t *testing.T) {
	st := Render("before [b]after")
	if got := st.Plain(); got != "before [b]after" {
		t.Fatalf("unclosed tag must stay literal, got %q", got)
	}
	for _, s := range st.Spans {
		if s.Bold {
			t.Fatalf("unclosed tag must not style the remainder: %+v", s)
		}
	}
}

func TestRender_CloseWithoutOpenStaysLiteral(t *testing.T) {
	st := Render("x[/b]y")
	if got := st.Plain(); got != "x[/b]y" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_CloseOrphanedByBlockStaysLiteral(t *testing.T) {
	// The [b] opens inside the quote and is consumed there as literal text;
	// its close lands outside the block. That close must stay literal and
	// must not unbalance styling for the later well-formed pair.
	st := Render("[quote][b]x[/quote][/b][b]z[/b]")

	if got := st.Plain(); !strings.Contains(got, "[/b]") {
		t.Fatalf("orphaned close must stay literal, got %q", got)
	}
	var boldZ bool
	for _, s := range st.Spans {
		if s.Text == "z" && s.Bold {
			boldZ = true
		}
		if strings.Contains(s.Text, "[/b]") && s.Bold {
			t.Fatalf("orphaned close must not be styled: %+v", s)
		}
	}
	if !boldZ {
		t.Fatalf("later well-formed pair must still style, spans: %+v", st.Spans)
	}
}

func TestRender_Emoticons(t *testing.T) {
	cases := []struct{ in, want string }{
		{"[s:ac:blink]", ":blink:"},
		{"[s:a2:goodjob]", ":goodjob:"},
		{"[s:laugh]", ":laugh:"},
	}
	for _, tc := range cases {
		if got := Render(tc.in).Plain(); got != tc.want {
			t.Fatalf("Render(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderValue_NonString(t *testing.T) {
	for _, v := range []any{nil, 42, []any{"x"}, map[string]any{}} {
		st := RenderValue(v)
		if st.Plain() != invalidPlaceholder {
			t.Fatalf("RenderValue(%v) = %q, want placeholder", v, st.Plain())
		}
	}
	if got := RenderValue("plain").Plain(); got != "plain" {
		t.Fatalf("string input must render normally, got %q", got)
	}
}

func TestRender_QuoteInsideCollapse(t *testing.T) {
	st := Render("[collapse][quote]inner[/quote]outer[/collapse]")
	plain := st.Plain()
	if !strings.Contains(plain, "Quote:") || !strings.Contains(plain, "inner") || !strings.Contains(plain, "outer") {
		t.Fatalf("nested block content lost: %q", plain)
	}
}

func TestRender_AdversarialBracketsTerminate(t *testing.T) {
	st := Render(strings.Repeat("[b]", 500) + strings.Repeat("[", 200))
	if st.Plain() == "" {
		t.Fatalf("expected literal output for unmatched noise")
	}
}
