package bbcode

// Tag vocabulary. Anything bracketed that is not listed here is left in the
// output as literal text; silently dropping unknown tokens would garble
// content that merely looks like markup.

// inlineTags map directly to span style attributes.
var inlineTags = map[string]struct{}{
	"b":     {},
	"i":     {},
	"u":     {},
	"del":   {},
	"color": {},
}

// blockTags are resolved recursively and wrapped in a fixed visual frame.
var blockTags = map[string]struct{}{
	"quote":    {},
	"collapse": {},
}

// linkTags produce link spans.
var linkTags = map[string]struct{}{
	"url": {},
	"img": {},
}

// strippedTags are recognized but unsupported in a terminal; the tags are
// removed and their inner text kept. Includes the site's game-item and
// achievement embeds, which only render on the web.
var strippedTags = map[string]struct{}{
	"size":  {},
	"font":  {},
	"align": {},
	"list":  {},
	"table": {},
	"tr":    {},
	"td":    {},
	"pid":   {},
	"tid":   {},
	// Game embeds.
	"item":        {},
	"quest":       {},
	"achievement": {},
	"currency":    {},
	"spell":       {},
	"talent":      {},
	"enchant":     {},
	"npc":         {},
	"faction":     {},
	"dice":        {},
}
