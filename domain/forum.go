package domain

// Placeholder strings substituted for fields the API returns as null or in
// an unusable shape. They must reach the display layer instead of nulls.
const (
	PlaceholderSubject  = "(no title)"
	PlaceholderAuthor   = "(unknown)"
	PlaceholderUsername = "(unknown)"
)

// DefaultRepliesPerPage is used when the API omits the per-page count or
// reports it as zero.
const DefaultRepliesPerPage = 20

// Forum identifies a board on the site.
type Forum struct {
	ID   int
	Name string
}

// Topic is one row in a forum's topic listing.
type Topic struct {
	ID        int64
	Subject   string // Never empty; placeholder-substituted.
	Author    string // Never empty; placeholder-substituted.
	Replies   int
	LastPost  int64  // Epoch seconds of last activity; 0 when unusable.
	PostDate  int64  // Epoch seconds of original post.
	TitleFont string // Raw style hint string, e.g. contains "b" or "color".
}

// SortKey is the timestamp used for listing order. Topics with a missing,
// non-numeric or zero last-activity time fall back to their post time.
func (t Topic) SortKey() int64 {
	if t.LastPost != 0 {
		return t.LastPost
	}
	return t.PostDate
}

// Reply is one floor of a topic. Floor 0 is the original post.
type Reply struct {
	Floor       int
	AuthorID    string
	PostDate    int64  // Epoch seconds; 0 when only the formatted form exists.
	PostDateRaw string // Pre-formatted time string, fallback for display.
	Content     string // Raw forum markup.
}

// User is an entry in a topic's user table, keyed by author ID.
type User struct {
	Username  string // Never empty; placeholder-substituted.
	Signature string // Raw forum markup, may be empty.
}

// TopicDetail aggregates one page of a topic: metadata, ordered replies and
// the user table the replies reference.
type TopicDetail struct {
	Topic        Topic
	Replies      []Reply // Ordered by floor ascending.
	Users        map[string]User
	TotalItems   int
	ItemsPerPage int // Always > 0.
}

// TotalPages returns ceil(TotalItems / ItemsPerPage), never less than 1.
// Callers compute this once from the first fetched page and hold it fixed;
// the service does not reliably repeat totals on later pages.
func (d TopicDetail) TotalPages() int {
	per := d.ItemsPerPage
	if per <= 0 {
		per = DefaultRepliesPerPage
	}
	if d.TotalItems <= 0 {
		return 1
	}
	return (d.TotalItems + per - 1) / per
}

// UserLookup resolves a reply author through the user table.
func (d TopicDetail) UserLookup(authorID string) User {
	if u, ok := d.Users[authorID]; ok {
		return u
	}
	return User{Username: PlaceholderUsername}
}

// UserIdentity is the authenticated user extracted from the session check.
type UserIdentity struct {
	UID      int64
	Username string
}
