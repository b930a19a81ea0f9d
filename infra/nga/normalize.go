package nga

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gyokusei/nga-cli/domain"
)

// The upstream API is duck-typed: record collections arrive either as a
// mapping (keys meaningless) or as a sequence, and numeric fields arrive as
// numbers or strings. Everything heterogeneous is consumed here, once;
// downstream code only ever sees the canonical slice forms.

// NormalizeTopicList extracts a forum page's topics from a decoded payload
// and orders them by last activity, most recent first. Records missing their
// last-activity time sort by post time instead; nothing here raises on a
// malformed record.
func NormalizeTopicList(payload any) []domain.Topic {
	obj := unwrapPayload(payload)
	records := recordList(obj["__T"])

	topics := make([]domain.Topic, 0, len(records))
	for _, rec := range records {
		topics = append(topics, topicFromRecord(rec))
	}
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].SortKey() > topics[j].SortKey()
	})
	return topics
}

// NormalizeTopicDetail builds the canonical aggregate for one page of a
// topic: metadata, replies ordered by floor, the user table and pagination
// counts with their documented defaults.
func NormalizeTopicDetail(payload any) domain.TopicDetail {
	obj := unwrapPayload(payload)

	detail := domain.TopicDetail{
		Users:        map[string]domain.User{},
		ItemsPerPage: domain.DefaultRepliesPerPage,
	}

	topicObj, _ := obj["__T"].(map[string]any)
	detail.Topic = topicFromRecord(topicObj)

	for _, rec := range recordList(obj["__R"]) {
		detail.Replies = append(detail.Replies, replyFromRecord(rec))
	}
	sort.SliceStable(detail.Replies, func(i, j int) bool {
		return detail.Replies[i].Floor < detail.Replies[j].Floor
	})

	if users, ok := obj["__U"].(map[string]any); ok {
		for id, v := range users {
			rec, ok := v.(map[string]any)
			if !ok {
				continue
			}
			detail.Users[id] = domain.User{
				Username:  stringField(rec, "username", domain.PlaceholderUsername),
				Signature: rawString(rec["signature"]),
			}
		}
	}

	detail.TotalItems = int(intField(topicObj, "replies") + 1)
	if rows, ok := coerceInt(obj["__ROWS"]); ok && rows > 0 {
		detail.TotalItems = int(rows)
	}
	if per, ok := coerceInt(obj["__R__ROWS_PAGE"]); ok && per > 0 {
		detail.ItemsPerPage = int(per)
	}
	return detail
}

// ForumName pulls the board name out of a forum-info payload.
func ForumName(payload any) (string, bool) {
	obj := unwrapPayload(payload)
	info, ok := obj["__F"].(map[string]any)
	if !ok {
		return "", false
	}
	name := rawString(info["name"])
	return name, name != ""
}

// unwrapPayload tolerates the endpoints that wrap the page object in a
// single-element array.
func unwrapPayload(payload any) map[string]any {
	if list, ok := payload.([]any); ok && len(list) > 0 {
		payload = list[0]
	}
	obj, _ := payload.(map[string]any)
	return obj
}

// recordList flattens the mapping-of-records and sequence-of-records shapes
// into one slice; mapping keys are discarded.
func recordList(v any) []map[string]any {
	switch t := v.(type) {
	case []any:
		out := make([]map[string]any, 0, len(t))
		for _, item := range t {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	case map[string]any:
		// Mapping keys are meaningless but map iteration order is random;
		// walk them sorted so ties in the later sort stay deterministic.
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]map[string]any, 0, len(t))
		for _, k := range keys {
			if rec, ok := t[k].(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	default:
		return nil
	}
}

func topicFromRecord(rec map[string]any) domain.Topic {
	return domain.Topic{
		ID:        intField(rec, "tid"),
		Subject:   stringField(rec, "subject", domain.PlaceholderSubject),
		Author:    stringField(rec, "author", domain.PlaceholderAuthor),
		Replies:   int(intField(rec, "replies")),
		LastPost:  intField(rec, "lastpost"),
		PostDate:  intField(rec, "postdate"),
		TitleFont: rawString(rec["titlefont"]),
	}
}

func replyFromRecord(rec map[string]any) domain.Reply {
	reply := domain.Reply{
		Floor:    int(intField(rec, "lou")),
		AuthorID: rawString(rec["authorid"]),
		Content:  rawString(rec["content"]),
	}
	if reply.AuthorID == "" {
		if id, ok := coerceInt(rec["authorid"]); ok {
			reply.AuthorID = strconv.FormatInt(id, 10)
		}
	}
	if ts, ok := coerceInt(rec["postdatetimestamp"]); ok && ts > 0 {
		reply.PostDate = ts
	} else {
		reply.PostDateRaw = rawString(rec["postdate"])
	}
	return reply
}

// stringField returns the record's field as a string, substituting the
// placeholder when it is missing, null or not a string.
func stringField(rec map[string]any, key, placeholder string) string {
	s, ok := rec[key].(string)
	if !ok || s == "" {
		return placeholder
	}
	return s
}

// rawString returns the value when it is a string, else "".
func rawString(v any) string {
	s, _ := v.(string)
	return s
}

// intField coerces the record's field to int64, returning 0 when it is
// missing or not numeric.
func intField(rec map[string]any, key string) int64 {
	n, _ := coerceInt(rec[key])
	return n
}

// coerceInt accepts the number-or-numeric-string shapes the API emits.
func coerceInt(v any) (int64, bool) {
	switch t := v.(type) {
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case int:
		return int64(t), true
	case int64:
		return t, true
	default:
		return 0, false
	}
}
