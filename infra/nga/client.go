package nga

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/gyokusei/nga-cli/app"
	"github.com/gyokusei/nga-cli/domain"
)

var (
	_ app.ForumService   = (*Client)(nil)
	_ app.SessionService = (*Client)(nil)
)

// DefaultBaseURL is the forum site root.
const DefaultBaseURL = "https://bbs.nga.cn"

// outputJSON is the query discriminator that makes the endpoints return the
// structured JSON shape instead of an HTML page.
const outputJSON = "11"

const defaultTimeout = 20 * time.Second

// commonHeaders mirror what the site's own mobile client sends; without the
// user agent some endpoints answer with an HTML error page.
var commonHeaders = map[string]string{
	"User-Agent":       "NGA_WP_JW(;WINDOWS)",
	"X-Requested-With": "XMLHttpRequest",
	"Accept":           "application/json",
	"Referer":          "https://bbs.nga.cn/",
}

// Options configure a Client. Zero values get sensible defaults; only Cookie
// is meaningfully required for authenticated endpoints.
type Options struct {
	BaseURL string
	Cookie  string // Raw cookie header value.
	Proxy   string // Optional proxy URL applied to all requests.
	Timeout time.Duration
	Diag    *Recorder // Optional request/response diagnostics sink.
	Logger  zerolog.Logger
}

// Client talks to the forum's JSON API. One logical request is in flight at
// a time by construction of the calling control flow; a failed fetch is
// surfaced, never retried.
type Client struct {
	http   *resty.Client
	dec    *Decoder
	diag   *Recorder
	log    zerolog.Logger
	base   string
	cookie string
}

// NewClient builds a Client from options.
func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	hc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeaders(commonHeaders)
	if opts.Cookie != "" {
		hc.SetHeader("Cookie", opts.Cookie)
	}
	if opts.Proxy != "" {
		hc.SetProxy(opts.Proxy)
	}

	return &Client{
		http:   hc,
		dec:    NewDecoder(),
		diag:   opts.Diag,
		log:    opts.Logger,
		base:   base,
		cookie: opts.Cookie,
	}
}

// Decoder exposes the client's decoder for post-mortem inspection.
func (c *Client) Decoder() *Decoder { return c.dec }

// ForumInfo fetches board metadata for a forum ID.
func (c *Client) ForumInfo(ctx context.Context, fid int) (domain.Forum, error) {
	payload, err := c.request(ctx, "/thread.php", map[string]string{
		"fid": fmt.Sprint(fid),
	})
	if err != nil {
		return domain.Forum{}, err
	}
	name, ok := ForumName(payload)
	if !ok {
		return domain.Forum{}, &domain.APIError{
			Kind:    domain.ErrRemote,
			Message: fmt.Sprintf("no board found for fid %d", fid),
		}
	}
	return domain.Forum{ID: fid, Name: name}, nil
}

// TopicPage fetches one page of a forum's topic listing.
func (c *Client) TopicPage(ctx context.Context, fid, page int) ([]domain.Topic, error) {
	payload, err := c.request(ctx, "/thread.php", map[string]string{
		"fid":  fmt.Sprint(fid),
		"page": fmt.Sprint(page),
	})
	if err != nil {
		return nil, err
	}
	return NormalizeTopicList(payload), nil
}

// TopicDetail fetches one page of a topic's replies.
func (c *Client) TopicDetail(ctx context.Context, tid int64, page int) (domain.TopicDetail, error) {
	payload, err := c.request(ctx, "/read.php", map[string]string{
		"tid":  fmt.Sprint(tid),
		"page": fmt.Sprint(page),
	})
	if err != nil {
		return domain.TopicDetail{}, err
	}
	return NormalizeTopicDetail(payload), nil
}

// request performs a single GET against an API endpoint and runs the body
// through the decoder. The request and the response text are persisted for
// the debug viewers regardless of outcome.
func (c *Client) request(ctx context.Context, endpoint string, params map[string]string) (any, error) {
	params["__output"] = outputJSON

	headers := make(http.Header, len(commonHeaders))
	for k, v := range commonHeaders {
		headers.Set(k, v)
	}
	if c.cookie != "" {
		headers.Set("Cookie", c.cookie)
	}
	c.diag.Request(http.MethodGet, c.base+endpoint, params, headers)

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint)
	if err != nil {
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("request failed")
		return nil, &domain.APIError{Kind: domain.ErrTransport, Err: err}
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		c.diag.Failure(string(resp.Body()))
		c.log.Error().Int("status", resp.StatusCode()).Str("endpoint", endpoint).Msg("request rejected")
		return nil, &domain.APIError{
			Kind:    domain.ErrTransport,
			Message: fmt.Sprintf("HTTP %d", resp.StatusCode()),
		}
	}

	payload, err := c.dec.Decode(resp.Body(), resp.Header().Get("Content-Type"))
	if err != nil {
		c.diag.Failure(c.dec.LastText())
		c.log.Error().Err(err).Str("endpoint", endpoint).Msg("decode failed")
		return nil, err
	}
	c.diag.Response(c.dec.LastText())
	return payload, nil
}
